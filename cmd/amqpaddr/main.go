package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glimte/amqpaddr-go/endpoint"
	"github.com/glimte/amqpaddr-go/topology"
)

var (
	version = "dev"
)

func main() {
	var hostURI string

	rootCmd := &cobra.Command{
		Use:     "amqpaddr",
		Short:   "Inspect RabbitMQ endpoint addresses",
		Long:    "amqpaddr parses endpoint address URIs and shows the resolved destination, its canonical form, the delayed delivery companion and the topology it implies.",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&hostURI, "host", "H", "amqp://localhost/", "base broker URI for queue: and exchange: addresses")

	parseCmd := &cobra.Command{
		Use:   "parse <uri>...",
		Short: "Parse address URIs and print the resolved destinations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				a, err := endpoint.Parse(hostURI, raw)
				if err != nil {
					return err
				}
				printAddress(cmd, a)
			}
			return nil
		},
	}

	topologyCmd := &cobra.Command{
		Use:   "topology <uri>",
		Short: "Show the declarations an address implies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withDelay, _ := cmd.Flags().GetBool("delay")

			a, err := endpoint.Parse(hostURI, args[0])
			if err != nil {
				return err
			}
			var opts []topology.PlanOption
			if withDelay {
				opts = append(opts, topology.WithDelayCompanion())
			}
			printPlan(cmd, topology.FromAddress(a, opts...))
			return nil
		},
	}
	topologyCmd.Flags().Bool("delay", false, "include the delayed delivery companion exchange")

	rootCmd.AddCommand(parseCmd, topologyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printAddress(cmd *cobra.Command, a *endpoint.Address) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "uri:          %s\n", a)
	fmt.Fprintf(out, "broker:       %s://%s:%d vhost=%s\n", a.Scheme, a.Host, a.Port, a.VirtualHost)
	fmt.Fprintf(out, "name:         %s\n", a.Name)
	fmt.Fprintf(out, "type:         %s\n", a.ExchangeType)
	fmt.Fprintf(out, "durable:      %v  auto-delete: %v\n", a.Durable, a.AutoDelete)
	if a.BindToQueue {
		queue := a.QueueName
		if queue == "" {
			queue = a.Name
		}
		fmt.Fprintf(out, "bound queue:  %s\n", queue)
	}
	if a.DelayedType != "" {
		fmt.Fprintf(out, "delayed kind: %s\n", a.DelayedType)
	}
	if a.AlternateExchange != "" {
		fmt.Fprintf(out, "alternate:    %s\n", a.AlternateExchange)
	}
	if len(a.BindExchanges) > 0 {
		fmt.Fprintf(out, "binds to:     %s\n", strings.Join(a.BindExchanges, ", "))
	}
	printArguments(cmd, "exchange args", a.ExchangeArguments)
	printArguments(cmd, "queue args", a.QueueArguments)
	fmt.Fprintf(out, "delay uri:    %s\n", a.DelayAddress())
	fmt.Fprintln(out)
}

func printArguments(cmd *cobra.Command, label string, args map[string]string) {
	if len(args) == 0 {
		return
	}
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+args[key])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", label+":", strings.Join(pairs, " "))
}

func printPlan(cmd *cobra.Command, plan topology.Plan) {
	out := cmd.OutOrStdout()
	for _, ex := range plan.Exchanges {
		fmt.Fprintf(out, "exchange %s type=%s durable=%v auto-delete=%v", ex.Name, ex.Type, ex.Durable, ex.AutoDelete)
		if len(ex.Arguments) > 0 {
			fmt.Fprintf(out, " args=%v", ex.Arguments)
		}
		fmt.Fprintln(out)
	}
	for _, q := range plan.Queues {
		fmt.Fprintf(out, "queue    %s durable=%v auto-delete=%v", q.Name, q.Durable, q.AutoDelete)
		if len(q.Arguments) > 0 {
			fmt.Fprintf(out, " args=%v", q.Arguments)
		}
		fmt.Fprintln(out)
	}
	for _, b := range plan.QueueBindings {
		fmt.Fprintf(out, "bind     %s -> queue %s\n", b.Exchange, b.Queue)
	}
	for _, b := range plan.ExchangeBindings {
		fmt.Fprintf(out, "bind     %s -> exchange %s\n", b.Source, b.Destination)
	}
}
