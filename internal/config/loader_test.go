package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rexbot/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no config file and no env overrides", t, func() {
		os.Unsetenv("REXBOT_CONFIG")
		os.Unsetenv("REXBOT_PREFIX")
		os.Unsetenv("REXBOT_OPS_ADDR")

		cfg, err := config.Load(context.Background())

		Convey("Then defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.Prefix, ShouldEqual, "cr.")
			So(cfg.OpsAddr, ShouldEqual, ":9090")
			So(cfg.CatalogPath, ShouldEqual, "config/raids_helper.json")
			So(cfg.FetchConcurrency, ShouldEqual, 4)
			So(cfg.ReactionTimeoutSeconds, ShouldEqual, 30)
		})
	})
}

func TestLoadEnvOverride(t *testing.T) {
	Convey("Given env overrides", t, func() {
		t.Setenv("REXBOT_PREFIX", "rex!")
		t.Setenv("REXBOT_CATALOG_PATH", "alt/raids.json")

		cfg, err := config.Load(context.Background())

		Convey("Then env wins over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Prefix, ShouldEqual, "rex!")
			So(cfg.CatalogPath, ShouldEqual, "alt/raids.json")
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "rexbot.yaml")
		yaml := "prefix: \"guild.\"\nops_addr: \":7070\"\nfetch_concurrency: 8\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("REXBOT_CONFIG", path)

		cfg, err := config.Load(context.Background())

		Convey("Then file values layer over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Prefix, ShouldEqual, "guild.")
			So(cfg.OpsAddr, ShouldEqual, ":7070")
			So(cfg.FetchConcurrency, ShouldEqual, 8)
			// Untouched keys keep defaults.
			So(cfg.DataDir, ShouldEqual, "data")
		})

		Convey("And env still wins over file", func() {
			t.Setenv("REXBOT_PREFIX", "env.")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Prefix, ShouldEqual, "env.")
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an invalid override", t, func() {
		t.Setenv("REXBOT_PREFIX", "x")
		t.Setenv("REXBOT_FETCH_CONCURRENCY", "0")

		_, err := config.Load(context.Background())

		Convey("Then Load rejects it with ErrInvalidConfig", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "fetch_concurrency")
		})
	})
}
