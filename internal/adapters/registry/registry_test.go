package registry_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/rexbot/internal/adapters/registry"
	"github.com/okian/rexbot/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newRegistry(t *testing.T) (*registry.FileRegistry, string, string) {
	t.Helper()
	_ = logger.Init()
	dir := t.TempDir()
	users := filepath.Join(dir, "users.json")
	guilds := filepath.Join(dir, "guilds.json")
	reg, err := registry.NewFileRegistry(users, guilds)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return reg, users, guilds
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty registry", t, func() {
		reg, usersPath, guildsPath := newRegistry(t)

		Convey("Registering a user stores the ally code", func() {
			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			So(reg.AllyCodes(ctx, "chat-1"), ShouldResemble, []string{"123456789"})
			So(reg.UserCount(ctx), ShouldEqual, 1)
		})

		Convey("A second code for the same user accumulates", func() {
			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			So(reg.RegisterUser(ctx, "chat-1", "987654321"), ShouldBeNil)
			So(reg.AllyCodes(ctx, "chat-1"), ShouldHaveLength, 2)
		})

		Convey("An ally code owned by another user is rejected", func() {
			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			err := reg.RegisterUser(ctx, "chat-2", "123456789")
			So(errors.Is(err, registry.ErrAllyCodeTaken), ShouldBeTrue)
			So(reg.UserCount(ctx), ShouldEqual, 1)
		})

		Convey("OwnerOf finds the registered chat id", func() {
			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			owner, ok := reg.OwnerOf(ctx, "123456789")
			So(ok, ShouldBeTrue)
			So(owner, ShouldEqual, "chat-1")

			_, ok = reg.OwnerOf(ctx, "000000000")
			So(ok, ShouldBeFalse)
		})

		Convey("Unregistering the only code drops the user", func() {
			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			So(reg.UnregisterUser(ctx, "chat-1", ""), ShouldBeNil)
			So(reg.UserCount(ctx), ShouldEqual, 0)
		})

		Convey("Unregistering with several codes requires naming one", func() {
			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			So(reg.RegisterUser(ctx, "chat-1", "987654321"), ShouldBeNil)

			err := reg.UnregisterUser(ctx, "chat-1", "")
			So(errors.Is(err, registry.ErrAmbiguousAllyCode), ShouldBeTrue)

			So(reg.UnregisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			So(reg.AllyCodes(ctx, "chat-1"), ShouldResemble, []string{"987654321"})
		})

		Convey("Unknown users and codes are reported", func() {
			So(errors.Is(reg.UnregisterUser(ctx, "nobody", ""), registry.ErrUnknownUser), ShouldBeTrue)

			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			So(reg.RegisterUser(ctx, "chat-1", "987654321"), ShouldBeNil)
			err := reg.UnregisterUser(ctx, "chat-1", "111111111")
			So(errors.Is(err, registry.ErrUnknownAllyCode), ShouldBeTrue)
		})

		Convey("State survives a reload from disk", func() {
			So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
			So(reg.RegisterGuild(ctx, "guild-1"), ShouldBeNil)

			reloaded, err := registry.NewFileRegistry(usersPath, guildsPath)
			So(err, ShouldBeNil)
			So(reloaded.AllyCodes(ctx, "chat-1"), ShouldResemble, []string{"123456789"})
			So(reloaded.GuildCount(ctx), ShouldEqual, 1)
		})
	})
}

func TestGuildLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty registry", t, func() {
		reg, _, _ := newRegistry(t)

		Convey("Guilds register once", func() {
			So(reg.RegisterGuild(ctx, "guild-1"), ShouldBeNil)
			So(errors.Is(reg.RegisterGuild(ctx, "guild-1"), registry.ErrGuildExists), ShouldBeTrue)
			So(reg.GuildCount(ctx), ShouldEqual, 1)
		})

		Convey("Guilds unregister", func() {
			So(reg.RegisterGuild(ctx, "guild-1"), ShouldBeNil)
			So(reg.UnregisterGuild(ctx, "guild-1"), ShouldBeNil)
			So(reg.GuildCount(ctx), ShouldEqual, 0)
			So(errors.Is(reg.UnregisterGuild(ctx, "guild-1"), registry.ErrUnknownGuild), ShouldBeTrue)
		})

		Convey("Guild lookup", func() {
			So(reg.RegisterGuild(ctx, "guild-1"), ShouldBeNil)
			guild, err := reg.Guild(ctx, "guild-1")
			So(err, ShouldBeNil)
			So(guild.ID, ShouldEqual, "guild-1")
		})
	})
}

func TestVIPLists(t *testing.T) {
	ctx := context.Background()

	Convey("Given a registered user and guild", t, func() {
		reg, _, _ := newRegistry(t)
		So(reg.RegisterUser(ctx, "chat-1", "123456789"), ShouldBeNil)
		So(reg.RegisterGuild(ctx, "guild-1"), ShouldBeNil)

		Convey("GAC VIP units add, dedupe and remove", func() {
			So(reg.AddVIPUnitGAC(ctx, "chat-1", "HANSOLO"), ShouldBeNil)
			So(reg.AddVIPUnitGAC(ctx, "chat-1", "HANSOLO"), ShouldBeNil)

			user, err := reg.User(ctx, "chat-1")
			So(err, ShouldBeNil)
			So(user.VIPUnitsGAC, ShouldResemble, []string{"HANSOLO"})

			So(reg.RemoveVIPUnitGAC(ctx, "chat-1", "HANSOLO"), ShouldBeNil)
			So(errors.Is(reg.RemoveVIPUnitGAC(ctx, "chat-1", "HANSOLO"), registry.ErrUnknownUnit), ShouldBeTrue)
		})

		Convey("TW VIP units add and remove", func() {
			So(reg.AddVIPUnitTW(ctx, "guild-1", "CHEWBACCA"), ShouldBeNil)

			guild, err := reg.Guild(ctx, "guild-1")
			So(err, ShouldBeNil)
			So(guild.VIPUnitsTW, ShouldResemble, []string{"CHEWBACCA"})

			So(reg.RemoveVIPUnitTW(ctx, "guild-1", "CHEWBACCA"), ShouldBeNil)
		})
	})
}
