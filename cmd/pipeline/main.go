package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-lakehouse/infrastructure/bronze"
	"github.com/vfg2006/sales-lakehouse/infrastructure/database/postgres"
	"github.com/vfg2006/sales-lakehouse/infrastructure/repository"
	"github.com/vfg2006/sales-lakehouse/infrastructure/storage/parquet"
	"github.com/vfg2006/sales-lakehouse/internal/api"
	"github.com/vfg2006/sales-lakehouse/internal/config"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
	"github.com/vfg2006/sales-lakehouse/internal/observability/metrics"
	"github.com/vfg2006/sales-lakehouse/internal/scheduler"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/aggregating"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/authenticating"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/pipeline"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/transforming"
	"github.com/vfg2006/sales-lakehouse/pkg/utils"
)

const usage = `Uso:
  pipeline [--layers silver|gold|all]   executa a pipeline uma vez e imprime o resultado
  pipeline serve                        sobe a API e o agendador
  pipeline token --subject S --role R   emite um token de acesso à API
  pipeline migrate                      cria a tabela de publicação das visões Gold
`

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, args := "run", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	switch command {
	case "run":
		err = runOnce(ctx, cfg, args)
	case "serve":
		err = serve(ctx, cfg)
	case "token":
		err = issueToken(cfg, args)
	case "migrate":
		err = migrate(ctx, cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logrus.WithError(err).Error("Comando terminou com erro")
		os.Exit(1)
	}
}

// runOnce executa as camadas pedidas e imprime o RunResult em JSON
func runOnce(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	layers := fs.String("layers", string(domain.LayerAll), "camadas a executar: silver, gold ou all")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	layer, err := domain.ParseLayer(*layers)
	if err != nil {
		return err
	}

	runner, _, cleanup, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, runErr := runner.Run(ctx, layer)

	out, err := utils.PrettyJSON(result)
	if err != nil {
		return err
	}
	fmt.Println(out)

	return runErr
}

func serve(ctx context.Context, cfg *config.Config) error {
	runner, sink, cleanup, err := buildRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	authenticator, err := authenticating.NewService(cfg.Auth)
	if err != nil {
		return err
	}

	syncService, err := scheduler.NewPipelineSyncService(runner, cfg)
	if err != nil {
		return err
	}

	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da pipeline")
	} else {
		logrus.Info("Agendador da pipeline iniciado com sucesso")
	}

	server, err := api.New(cfg, runner, syncService, sink, authenticator)
	if err != nil {
		return err
	}

	return server.Run(ctx)
}

func issueToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("subject", "", "identificação de quem usará o token")
	role := fs.String("role", domain.RoleViewer, "papel: operator ou viewer")
	ttl := fs.Duration("ttl", 24*time.Hour, "validade do token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *subject == "" {
		return fmt.Errorf("--subject é obrigatório")
	}

	authenticator, err := authenticating.NewService(cfg.Auth)
	if err != nil {
		return err
	}

	token, err := authenticator.IssueToken(*subject, *role, *ttl)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func migrate(ctx context.Context, cfg *config.Config) error {
	conn := pgconn(ctx, cfg.Database)
	defer conn.Close()

	if err := repository.NewGoldViewRepository(conn).EnsureSchema(ctx); err != nil {
		return err
	}

	logrus.Info("Tabela de publicação das visões Gold pronta")
	return nil
}

// buildRunner monta leitor, transformação, agregação, sink e publicação opcional
func buildRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, *parquet.Sink, func(), error) {
	opts, err := cfg.Pipeline()
	if err != nil {
		return nil, nil, nil, err
	}

	transformer, err := transforming.NewService(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	aggregator, err := aggregating.NewService(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	reader := bronze.NewReader(cfg.Paths.BronzeDir, cfg.Paths.SalesFilePattern)
	sink := parquet.NewSink(cfg.Paths.SilverDir, cfg.Paths.GoldDir)

	runnerOpts := []pipeline.Option{pipeline.WithMetrics(metrics.Pipeline())}
	cleanup := func() {}

	if cfg.GoldPublish.Enabled {
		conn := pgconn(ctx, cfg.Database)
		publisher := repository.NewGoldViewRepository(conn)
		if err := publisher.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}

		runnerOpts = append(runnerOpts, pipeline.WithPublisher(publisher))
		cleanup = func() { conn.Close() }
		logrus.Info("Publicação das visões Gold no PostgreSQL habilitada")
	}

	runner := pipeline.NewRunner(reader, transformer, sink, aggregator, sink, runnerOpts...)
	return runner, sink, cleanup, nil
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
