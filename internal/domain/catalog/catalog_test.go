package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rexbot/internal/domain/catalog"
	"github.com/okian/rexbot/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCatalog = `[
  {
    "name": "The Pit",
    "teams": [
      {
        "name": "Alpha",
        "variants": [
          {
            "name": "V1",
            "percentDamage": 80,
            "members": [
              {"name": "Han Solo", "gear": 12, "relic": 0, "zetas": 1},
              {"name": "Chewbacca", "gear": 13, "relic": 5, "zetas": 2}
            ]
          }
        ]
      }
    ]
  }
]`

// fakeResolver resolves names to upper-cased ids and fails on demand.
type fakeResolver struct {
	failOn string
	calls  int
}

func (f *fakeResolver) FindUnit(_ context.Context, name string) (model.UnitInfo, error) {
	f.calls++
	if name == f.failOn {
		return model.UnitInfo{}, errors.New("unknown unit")
	}
	return model.UnitInfo{BaseID: "ID_" + name}, nil
}

func TestParse(t *testing.T) {
	Convey("Given a well-formed catalog document", t, func() {
		raids, err := catalog.Parse([]byte(sampleCatalog))

		Convey("Then it decodes and validates", func() {
			So(err, ShouldBeNil)
			So(raids, ShouldHaveLength, 1)
			So(raids[0].Name, ShouldEqual, "The Pit")
			So(raids[0].Teams[0].Variants[0].Members, ShouldHaveLength, 2)
			So(raids[0].Teams[0].Variants[0].PercentDamage, ShouldEqual, 80)
		})
	})

	Convey("Given malformed JSON", t, func() {
		_, err := catalog.Parse([]byte("{not json"))
		So(errors.Is(err, catalog.ErrCatalogParse), ShouldBeTrue)
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a catalog file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "raids.json")
		So(os.WriteFile(path, []byte(sampleCatalog), 0o600), ShouldBeNil)

		raids, err := catalog.Load(path)
		So(err, ShouldBeNil)
		So(raids, ShouldHaveLength, 1)
	})

	Convey("Given a missing file", t, func() {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "absent.json"))
		So(errors.Is(err, catalog.ErrCatalogRead), ShouldBeTrue)
	})
}

func TestValidate(t *testing.T) {
	base := func() []model.Raid {
		return []model.Raid{{
			Name: "R",
			Teams: []model.Team{{
				Name: "T",
				Variants: []model.TeamVariant{{
					Name:          "V",
					PercentDamage: 50,
					Members:       []model.TeamMember{{Name: "Han Solo", Gear: 10}},
				}},
			}},
		}}
	}

	Convey("Given a valid catalog", t, func() {
		So(catalog.Validate(base()), ShouldBeNil)
	})

	Convey("Given a member with zero total requirement", t, func() {
		raids := base()
		raids[0].Teams[0].Variants[0].Members[0] = model.TeamMember{Name: "Han Solo"}

		err := catalog.Validate(raids)

		Convey("Then validation fails naming the member", func() {
			So(errors.Is(err, catalog.ErrZeroRequirement), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `raid "R"`)
			So(err.Error(), ShouldContainSubstring, `team "T"`)
			So(err.Error(), ShouldContainSubstring, `variant "V"`)
			So(err.Error(), ShouldContainSubstring, `"Han Solo"`)
		})
	})

	Convey("Given a variant with too many members", t, func() {
		raids := base()
		members := make([]model.TeamMember, model.TeamSlots+1)
		for i := range members {
			members[i] = model.TeamMember{Name: fmt.Sprintf("U%d", i), Gear: 1}
		}
		raids[0].Teams[0].Variants[0].Members = members

		So(errors.Is(catalog.Validate(raids), catalog.ErrInvalidCatalog), ShouldBeTrue)
	})

	Convey("Given a percentDamage outside 0-100", t, func() {
		raids := base()
		raids[0].Teams[0].Variants[0].PercentDamage = 120

		So(errors.Is(catalog.Validate(raids), catalog.ErrInvalidCatalog), ShouldBeTrue)
	})

	Convey("Given a variant with no members", t, func() {
		raids := base()
		raids[0].Teams[0].Variants[0].Members = nil

		So(errors.Is(catalog.Validate(raids), catalog.ErrInvalidCatalog), ShouldBeTrue)
	})
}

func TestResolveMembers(t *testing.T) {
	Convey("Given a catalog and a working resolver", t, func() {
		raids, err := catalog.Parse([]byte(sampleCatalog))
		So(err, ShouldBeNil)

		resolver := &fakeResolver{}
		index, err := catalog.ResolveMembers(context.Background(), resolver, raids)

		Convey("Then every slot maps to a base id", func() {
			So(err, ShouldBeNil)
			So(index, ShouldHaveLength, 2)
			So(index[catalog.MemberKey{Raid: "The Pit", Team: "Alpha", Variant: "V1", Slot: 0}],
				ShouldEqual, "ID_Han Solo")
			So(index[catalog.MemberKey{Raid: "The Pit", Team: "Alpha", Variant: "V1", Slot: 1}],
				ShouldEqual, "ID_Chewbacca")
		})

		Convey("And each distinct name is resolved once", func() {
			So(err, ShouldBeNil)
			So(resolver.calls, ShouldEqual, 2)
		})
	})

	Convey("Given a resolver that cannot find a member", t, func() {
		raids, err := catalog.Parse([]byte(sampleCatalog))
		So(err, ShouldBeNil)

		_, err = catalog.ResolveMembers(context.Background(), &fakeResolver{failOn: "Chewbacca"}, raids)

		Convey("Then resolution is a hard error naming the slot", func() {
			So(errors.Is(err, catalog.ErrUnresolvableUnit), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Chewbacca")
			So(err.Error(), ShouldContainSubstring, `raid "The Pit"`)
		})
	})
}
