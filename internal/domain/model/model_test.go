package model_test

import (
	"testing"

	"github.com/okian/rexbot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestZetaCount(t *testing.T) {
	Convey("Given a unit with mixed skill states", t, func() {
		unit := model.UnitEntry{
			DefID: "HANSOLO",
			Skills: []model.Skill{
				{ID: "basic", Tier: 8, Tiers: 8, IsZeta: false},
				{ID: "special1", Tier: 8, Tiers: 8, IsZeta: true},
				{ID: "special2", Tier: 7, Tiers: 8, IsZeta: true},
				{ID: "leader", Tier: 8, Tiers: 8, IsZeta: true},
			},
		}

		Convey("Only fully learned zeta skills count", func() {
			So(unit.ZetaCount(), ShouldEqual, 2)
		})
	})

	Convey("Given a unit with no skills", t, func() {
		So(model.UnitEntry{}.ZetaCount(), ShouldEqual, 0)
	})
}

func TestProgressUnits(t *testing.T) {
	Convey("Given a unit below max gear", t, func() {
		unit := model.UnitEntry{
			Gear:  11,
			Relic: model.RelicState{CurrentTier: 5},
		}

		Convey("Relic state is ignored", func() {
			So(unit.ProgressUnits(), ShouldEqual, 11)
		})
	})

	Convey("Given a unit at max gear with relic tier 5", t, func() {
		unit := model.UnitEntry{
			Gear:  model.MaxGearTier,
			Relic: model.RelicState{CurrentTier: 5},
			Skills: []model.Skill{
				{ID: "special1", Tier: 8, Tiers: 8, IsZeta: true},
			},
		}

		Convey("Relic contributes tier minus the calibration offset", func() {
			// 13 gear + (5-2) relic + 1 zeta
			So(unit.ProgressUnits(), ShouldEqual, 17)
		})
	})
}

func TestRosterLookup(t *testing.T) {
	Convey("Given a player roster", t, func() {
		player := model.PlayerRosterEntry{
			Name: "Han",
			Roster: []model.UnitEntry{
				{DefID: "HANSOLO", Gear: 12},
				{DefID: "CHEWBACCA", Gear: 13},
			},
		}

		Convey("Owned units are found by base id", func() {
			unit := player.Unit("CHEWBACCA")
			So(unit, ShouldNotBeNil)
			So(unit.Gear, ShouldEqual, 13)
		})

		Convey("Missing units return nil", func() {
			So(player.Unit("R2D2"), ShouldBeNil)
		})
	})
}

func TestWeightedScore(t *testing.T) {
	Convey("Given a variant result", t, func() {
		r := model.TeamVariantResult{Total: 50, PercentDamage: 80}

		Convey("The weighted score multiplies completion by damage share", func() {
			So(r.WeightedScore(), ShouldEqual, 40.0)
		})
	})
}
