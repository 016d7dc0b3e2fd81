//go:build wireinject
// +build wireinject

package main

import (
	"tq-datafeed/internal/app"
	"tq-datafeed/internal/provider"
	"tq-datafeed/internal/provider/tqsdk"
	"tq-datafeed/internal/saver"
	"tq-datafeed/internal/setting"

	"github.com/google/wire"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Feed   provider.Datafeed
	Saver  saver.Saver
}

// InitializeApp builds App (Config + Datafeed + Saver) via Wire.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideLogger,
		app.ProvideSettings,
		app.ProvideSaver,
		app.ProvideDialer,
		app.ProvideDatafeed,
		wire.Bind(new(setting.Settings), new(setting.Store)),
		wire.Bind(new(provider.Datafeed), new(*tqsdk.Datafeed)),
		wire.Struct(new(App), "Config", "Feed", "Saver"),
	)
	return nil, nil
}
