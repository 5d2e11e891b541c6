package config_test

import (
	"errors"
	"testing"

	"github.com/okian/questboost/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Store, convey.ShouldEqual, config.StoreMongo)
			convey.So(cfg.WinsCollection, convey.ShouldEqual, "boosts")
			convey.So(cfg.ClaimsCollection, convey.ShouldEqual, "boost_claims")
			convey.So(cfg.QueryMode, convey.ShouldEqual, config.QueryModePipeline)
			convey.So(cfg.ConnectTimeoutMS, convey.ShouldEqual, 10_000)
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When the query mode is unknown", func() {
			cfg.QueryMode = "graph"
			err := cfg.Validate()

			convey.Convey("Then validation fails with ErrInvalidConfig", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "query_mode")
			})
		})

		convey.Convey("When the store is unknown", func() {
			cfg.Store = "postgres"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the mongo store has no URI", func() {
			cfg.MongoURI = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the memory store has no URI", func() {
			cfg.Store = config.StoreMemory
			cfg.MongoURI = ""
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When both record sets share a collection", func() {
			cfg.ClaimsCollection = cfg.WinsCollection
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the connect timeout is negative", func() {
			cfg.ConnectTimeoutMS = -1
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
