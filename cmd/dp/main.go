package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"departamento/internal/app"
	"departamento/internal/config"
	"departamento/internal/logging"
	"departamento/internal/server"
	departamentosdk "departamento/sdk/go"
)

var rootCmd = &cobra.Command{
	Use:   "dp",
	Short: "Departamento de polícia: agentes e casos",
	Long: `dp serves and queries the police department API.
- agentes: officers with a name, incorporation date and role.
- casos: investigations with a title, description, status (aberto/solucionado) and the responsible agente.
- eventos: the change log of every successful write, view with 'dp eventos tail'.`,
	SilenceUsage: true,
}

func main() {
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().String("server", "http://127.0.0.1:3000", "API base URL used by client commands")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("client.server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(agentesCmd(os.Stdout))
	rootCmd.AddCommand(casosCmd(os.Stdout))
	rootCmd.AddCommand(eventosCmd(os.Stdout))
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), viper.GetString("config"))
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			handler, err := server.New(server.Config{
				Engine:   a.Engine,
				BasePath: cfg.Server.BasePath,
				Logger:   logger,
				Registry: reg,
			})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Warn("shutdown", zap.Error(err))
				}
			}()
			logger.Info("serving",
				zap.String("addr", cfg.Server.Addr),
				zap.String("base_path", cfg.Server.BasePath),
				zap.Bool("audit", cfg.Audit.Enabled))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().String("base-path", "", "API base path")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.base_path", cmd.Flags().Lookup("base-path"))
	return cmd
}

func configCmd() *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Inspect configuration"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cfg)
		},
	})
	return cfgCmd
}

func newClient() *departamentosdk.Client {
	return departamentosdk.New(viper.GetString("client.server"))
}

func agentesCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{Use: "agentes", Short: "Query and manage agentes"}

	var q departamentosdk.AgenteQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List agentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := newClient().ListAgentes(cmd.Context(), q)
			if err != nil {
				return err
			}
			return renderAgentes(out, items)
		},
	}
	list.Flags().StringVar(&q.Cargo, "cargo", "", "cargo filter")
	list.Flags().StringVar(&q.Sort, "sort", "", "dataDeIncorporacao or -dataDeIncorporacao")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an agente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newClient().GetAgente(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderAgentes(out, []departamentosdk.Agente{a})
		},
	}

	var in departamentosdk.Agente
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an agente",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newClient().CreateAgente(cmd.Context(), in)
			if err != nil {
				return err
			}
			return renderAgentes(out, []departamentosdk.Agente{a})
		},
	}
	create.Flags().StringVar(&in.Nome, "nome", "", "name")
	create.Flags().StringVar(&in.DataDeIncorporacao, "data", "", "incorporation date (YYYY-MM-DD)")
	create.Flags().StringVar(&in.Cargo, "cargo", "", "role")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an agente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient().DeleteAgente(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, get, create, del)
	return cmd
}

func casosCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{Use: "casos", Short: "Query and manage casos"}

	var q departamentosdk.CasoQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List casos",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := newClient().ListCasos(cmd.Context(), q)
			if err != nil {
				return err
			}
			return renderCasos(out, items)
		},
	}
	list.Flags().StringVar(&q.AgenteID, "agente-id", "", "agente filter")
	list.Flags().StringVar(&q.Status, "status", "", "status filter")
	list.Flags().StringVarP(&q.Q, "query", "q", "", "text search in titulo and descricao")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a caso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient().GetCaso(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderCasos(out, []departamentosdk.Caso{c})
		},
	}

	var in departamentosdk.Caso
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a caso",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient().CreateCaso(cmd.Context(), in)
			if err != nil {
				return err
			}
			return renderCasos(out, []departamentosdk.Caso{c})
		},
	}
	create.Flags().StringVar(&in.Titulo, "titulo", "", "title")
	create.Flags().StringVar(&in.Descricao, "descricao", "", "description")
	create.Flags().StringVar(&in.Status, "status", "aberto", "aberto or solucionado")
	create.Flags().StringVar(&in.AgenteID, "agente-id", "", "responsible agente")

	var status string
	setStatus := &cobra.Command{
		Use:   "status <id>",
		Short: "Change the status of a caso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient().PatchCaso(cmd.Context(), args[0], map[string]string{"status": status})
			if err != nil {
				return err
			}
			return renderCasos(out, []departamentosdk.Caso{c})
		},
	}
	setStatus.Flags().StringVar(&status, "set", "solucionado", "new status")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a caso",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newClient().DeleteCaso(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, get, create, setStatus, del)
	return cmd
}

func eventosCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{Use: "eventos", Short: "Inspect the change log"}
	var q departamentosdk.EventQuery
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Show the most recent events",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := newClient().Events(cmd.Context(), q)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(out, items)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(out)
			tw.AppendHeader(table.Row{"ID", "TS", "Type", "Entity", "Payload"})
			for _, ev := range items {
				tw.AppendRow(table.Row{ev.ID, ev.TS, ev.Type, ev.EntityKind + ":" + ev.EntityID, ev.Payload})
			}
			tw.Render()
			return nil
		},
	}
	tail.Flags().IntVar(&q.Limit, "n", 20, "number of events")
	tail.Flags().StringVar(&q.EntityKind, "entity-kind", "", "agente or caso")
	tail.Flags().StringVar(&q.EntityID, "entity-id", "", "entity id")
	cmd.AddCommand(tail)
	return cmd
}

func renderAgentes(out io.Writer, items []departamentosdk.Agente) error {
	if viper.GetBool("json") {
		return printJSON(out, items)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"ID", "Nome", "Incorporação", "Cargo"})
	for _, a := range items {
		tw.AppendRow(table.Row{a.ID, a.Nome, a.DataDeIncorporacao, a.Cargo})
	}
	tw.Render()
	return nil
}

func renderCasos(out io.Writer, items []departamentosdk.Caso) error {
	if viper.GetBool("json") {
		return printJSON(out, items)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"ID", "Título", "Status", "Agente"})
	for _, c := range items {
		tw.AppendRow(table.Row{c.ID, c.Titulo, c.Status, c.AgenteID})
	}
	tw.Render()
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
