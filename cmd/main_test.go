package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/questboost/internal/config"
	"github.com/okian/questboost/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const testSeed = `{
	"wins": [
		{"id": 7, "winner": ["0x0000000000000000000000000000000000000000000000000000000000000abc"], "amount": 42},
		{"id": 8, "winner": ["0x0000000000000000000000000000000000000000000000000000000000000abc"]}
	],
	"claims": [
		{"id": 8, "winner": "0x0000000000000000000000000000000000000000000000000000000000000abc", "_cursor": {"from": 1}}
	]
}`

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("BOOST_ADDR", ":9090")
			t.Setenv("BOOST_STORE", "memory")
			t.Setenv("BOOST_QUERY_MODE", "split")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Store, convey.ShouldEqual, "memory")
				convey.So(cfg.QueryMode, convey.ShouldEqual, "split")
			})
		})

		convey.Convey("When mapping configuration onto the service", func() {
			cfg := config.New()
			cfg.Store = config.StoreMemory
			cfg.WinsCollection = "wins"
			svc := newService(cfg, logger.Get())

			convey.Convey("Then the options are applied", func() {
				stats := svc.GetStats()
				convey.So(stats["store"], convey.ShouldEqual, "memory")
				convey.So(stats["winsCollection"], convey.ShouldEqual, "wins")
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a service on a seeded memory store", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		seed := filepath.Join(t.TempDir(), "seed.json")
		convey.So(os.WriteFile(seed, []byte(testSeed), 0o600), convey.ShouldBeNil)

		cfg := config.New()
		cfg.Store = config.StoreMemory
		cfg.SeedFile = seed
		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		srv := httptest.NewServer(newMux(ctx, svc))
		defer srv.Close()

		get := func(path string) *http.Response {
			resp, err := http.Get(srv.URL + path)
			convey.So(err, convey.ShouldBeNil)
			return resp
		}

		convey.Convey("Then the pending claims route answers over HTTP", func() {
			resp := get("/boost/get_pending_claims?addr=0xABC")
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			convey.So(resp.Header.Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})

		convey.Convey("And operational routes are mounted", func() {
			for _, path := range []string{"/", "/healthz", "/readyz", "/stats", "/openapi.yaml", "/api-docs"} {
				resp := get(path)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}
