package report

import (
	"fmt"
	"strings"

	"github.com/okian/rexbot/internal/domain/model"
	"github.com/okian/rexbot/internal/domain/selection"
)

// DefaultFieldSizeLimit matches the transport's per-field text limit.
const DefaultFieldSizeLimit = 1024

const providerFooter = "via swgoh.help"

// Renderer turns selected raid results into transport-ready reports.
type Renderer struct {
	fieldLimit int
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithFieldSizeLimit overrides the per-field pagination limit.
func WithFieldSizeLimit(limit int) Option {
	return func(r *Renderer) {
		if limit > 0 {
			r.fieldLimit = limit
		}
	}
}

// NewRenderer creates a renderer with configuration options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		fieldLimit: DefaultFieldSizeLimit,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render produces the ordered report sequence for one raid. Doable
// results render as a per-team summary; every other policy renders a
// detailed per-variant breakdown.
func (r *Renderer) Render(raid model.Raid, players []model.PlayerRaidResult, policy selection.Policy) []Report {
	if policy == selection.Doable {
		return r.renderSummary(raid, players, policy)
	}
	return r.renderDetailed(raid, players, policy)
}

// variantUnits returns the comma-joined member names of a variant.
func variantUnits(variant model.TeamVariant) string {
	names := make([]string, len(variant.Members))
	for i, m := range variant.Members {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}

// countQualifying counts player results matching a (team, variant) pair.
func countQualifying(players []model.PlayerRaidResult, team, variant string) int {
	count := 0
	for _, p := range players {
		for _, res := range p.VariantResults {
			if res.Team == team && res.Variant == variant {
				count++
			}
		}
	}
	return count
}

func (r *Renderer) renderSummary(raid model.Raid, players []model.PlayerRaidResult, policy selection.Policy) []Report {
	t := newTable("Teams")
	t.header("Team Units", "% Dmg", "Players")
	t.maxWidth(1, 34)

	for _, team := range raid.Teams {
		for _, variant := range team.Variants {
			count := countQualifying(players, team.Name, variant.Name)
			if count > 0 {
				t.row(variantUnits(variant), variant.PercentDamage, count)
			}
		}
	}

	if t.rows() == 0 {
		return nil
	}
	t.sortDescNumeric(3)

	rep := Report{
		Title:       fmt.Sprintf("Raids Helper %q", raid.Name),
		Description: fmt.Sprintf("Here are the %s teams for this raid:", policy),
		Footer:      providerFooter,
	}
	rep.Fields = appendFields(rep.Fields, "Teams", codeFence+"\n"+t.render()+"\n"+codeFence, r.fieldLimit)

	return []Report{rep}
}

func (r *Renderer) renderDetailed(raid model.Raid, players []model.PlayerRaidResult, policy selection.Policy) []Report {
	var reports []Report

	for _, team := range raid.Teams {
		for _, variant := range team.Variants {
			status := newTable("")
			status.header("Name", "(1)", "(2)", "(3)", "(4)", "(5)", "%")

			for _, player := range players {
				for _, res := range player.VariantResults {
					if res.Team != team.Name || res.Variant != variant.Name {
						continue
					}
					row := make([]any, 0, model.TeamSlots+2)
					row = append(row, player.Name)
					for slot := 0; slot < model.TeamSlots; slot++ {
						if slot < len(res.MemberDones) {
							row = append(row, res.MemberDones[slot])
						} else {
							row = append(row, "")
						}
					}
					row = append(row, res.Total)
					status.row(row...)
				}
			}

			if status.rows() == 0 {
				continue
			}
			status.sortDescNumeric(model.TeamSlots + 2)

			reqs := newTable(fmt.Sprintf("%s (%s) - %v%%", team.Name, variant.Name, variant.PercentDamage))
			reqs.header("#", "Unit", "Gear", "+", "Z")
			for i, member := range variant.Members {
				reqs.row(fmt.Sprintf("(%d)", i+1), member.Name, member.Gear, member.Relic, member.Zetas)
			}

			rep := Report{
				Title:  fmt.Sprintf("Raids Helper %q", raid.Name),
				Footer: providerFooter,
			}
			if len(reports) == 0 {
				rep.Description = fmt.Sprintf("Here are the %s teams for this raid:", policy)
			} else {
				rep.Description = "(continued)"
			}
			rep.Fields = appendFields(rep.Fields, "Requirements", codeFence+"\n"+reqs.render()+"\n"+codeFence, r.fieldLimit)
			rep.Fields = appendFields(rep.Fields, "Status", codeFence+"\n"+status.render()+"\n"+codeFence, r.fieldLimit)

			reports = append(reports, rep)
		}
	}

	return reports
}
