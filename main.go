package main

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	"github.com/petersparlor/parlor-fulfillment/dialogue/fulfillment"
	configx "github.com/petersparlor/parlor-fulfillment/pkg/config"
	_ "github.com/petersparlor/parlor-fulfillment/pkg/logger/autoload"
	qstashx "github.com/petersparlor/parlor-fulfillment/pkg/qstash"
	counterx "github.com/petersparlor/parlor-fulfillment/store/counter"
	ledgerx "github.com/petersparlor/parlor-fulfillment/store/ledger"
	prepx "github.com/petersparlor/parlor-fulfillment/store/prep"
	webhookx "github.com/petersparlor/parlor-fulfillment/webhook"
)

type AppConfig struct {
	PrepNotifyEnabled bool `envconfig:"PREP_NOTIFY_ENABLED" default:"false"`
}

func main() {
	ctx := context.Background()
	appCfg := configx.MustNew[AppConfig]("")

	db := ledgerx.OpenPostgres(*configx.MustNew[ledgerx.Config]("POSTGRES"))
	orderLedger, err := ledgerx.New(db)
	if err != nil {
		log.Fatal().Err(err).Msg("init order ledger")
	}
	if err := orderLedger.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate order ledger")
	}

	pickupCounter, err := counterx.NewUpstashCounter(*configx.MustNew[counterx.Config]("UPSTASH"))
	if err != nil {
		log.Fatal().Err(err).Msg("init pickup counter")
	}

	var notifier contractx.Notifier
	if appCfg.PrepNotifyEnabled {
		client := qstashx.MustNew(*configx.MustNew[qstashx.Config]("QSTASH"))
		station, err := prepx.NewStationNotifier(client, *configx.MustNew[prepx.Config]("PREP"))
		if err != nil {
			log.Fatal().Err(err).Msg("init prep-station notifier")
		}
		notifier = station
	}

	svc, err := fulfillment.New(orderLedger, pickupCounter, notifier)
	if err != nil {
		log.Fatal().Err(err).Msg("init fulfillment service")
	}

	srvCfg := configx.MustNew[webhookx.Config]("HTTP")
	srv, err := webhookx.NewServer(svc, *srvCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init webhook server")
	}

	log.Info().Int("port", srvCfg.Port).Msg("fulfillment webhook listening")
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("webhook server stopped")
	}
}
