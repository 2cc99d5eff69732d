package main

import (
	"os"

	"github.com/apache/thrift/lib/go/thrift"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/common/dialer"
	"github.com/sparrowdev/sparrow/common/endpoints"
	"github.com/sparrowdev/sparrow/common/log/hooks"
	"github.com/sparrowdev/sparrow/common/stats"
	"github.com/sparrowdev/sparrow/config"
	frontendapi "github.com/sparrowdev/sparrow/frontendapi/client"
	"github.com/sparrowdev/sparrow/sched"
	"github.com/sparrowdev/sparrow/sched/scheduler"
	"github.com/sparrowdev/sparrow/sparrowapi/server"
	workerapi "github.com/sparrowdev/sparrow/workerapi/client"
)

var (
	addr      string
	httpAddr  string
	cfgText   string
	logLevel  string
	localNode []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Probe-based task placement scheduler daemon",
		RunE:  run,
	}
	rootCmd.Flags().StringVar(&addr, "addr", "localhost:20503", "bind address for the thrift scheduler api")
	rootCmd.Flags().StringVar(&httpAddr, "http_addr", "localhost:20504", "bind address for http health & stats")
	rootCmd.Flags().StringVar(&cfgText, "config", "", "scheduler configuration as JSON text")
	rootCmd.Flags().StringVar(&logLevel, "log_level", "info", "logrus log level")
	rootCmd.Flags().StringSliceVar(&localNode, "local_node", nil,
		"app=host:port node monitor registrations for standalone mode")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.AddHook(hooks.NewContextHook())

	log.Info("Starting scheduler daemon")

	cfg, err := config.DefaultParser().Parse([]byte(cfgText))
	if err != nil {
		return err
	}
	state, err := cfg.Cluster.Create()
	if err != nil {
		return err
	}
	registerLocalNodes(state)

	schedulerAddr, err := sched.ParseHostPort(addr)
	if err != nil {
		return err
	}

	stat := stats.DefaultStatsReceiver().Scope("scheduler")
	go func() {
		log.Fatal(endpoints.NewOpsServer(httpAddr, stat).Serve())
	}()

	transportFactory := thrift.NewTTransportFactory()
	protocolFactory := thrift.NewTBinaryProtocolFactoryDefault()
	d := dialer.NewSimpleDialer(transportFactory, protocolFactory)

	s := scheduler.NewScheduler(
		schedulerAddr,
		state,
		workerapi.NewPool(d, 4),
		frontendapi.NewPool(d, 4),
		cfg.Scheduler,
		stat,
		nil)

	return server.Serve(s, stat, addr, transportFactory, protocolFactory)
}

// registerLocalNodes seeds standalone deployments with node monitors given
// on the command line.
func registerLocalNodes(state cluster.SchedulerState) {
	type registrar interface {
		AddBackend(appId string, node cluster.Node)
	}
	standalone, ok := state.(registrar)
	if !ok {
		if len(localNode) > 0 {
			log.Warn("--local_node is only honored in standalone mode")
		}
		return
	}
	for _, entry := range localNode {
		app, nodeAddr := splitRegistration(entry)
		if app == "" {
			log.Errorf("Ignoring malformed --local_node entry %q (want app=host:port)", entry)
			continue
		}
		standalone.AddBackend(app, cluster.NewIdNode(nodeAddr))
	}
}

func splitRegistration(entry string) (app, nodeAddr string) {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			return entry[:i], entry[i+1:]
		}
	}
	return "", ""
}
