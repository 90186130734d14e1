package rabbitmq

import (
	"context"
	"log/slog"

	"github.com/glimte/amqpaddr-go/topology"
)

// Declarer applies topology plans against a broker.
type Declarer struct {
	cm     *ConnectionManager
	logger *slog.Logger
}

// NewDeclarer creates a declarer over an established connection manager.
func NewDeclarer(cm *ConnectionManager, logger *slog.Logger) *Declarer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Declarer{cm: cm, logger: logger}
}

// Declare applies the plan in declaration order: exchanges, queues, queue
// bindings, exchange bindings. The first failure aborts the remainder.
func (d *Declarer) Declare(ctx context.Context, plan topology.Plan) error {
	ch, err := d.cm.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	for _, exchange := range plan.Exchanges {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := ch.ExchangeDeclare(
			exchange.Name,
			exchange.Type,
			exchange.Durable,
			exchange.AutoDelete,
			false, // internal
			false, // no-wait
			exchange.Arguments,
		)
		if err != nil {
			return &TopologyError{Component: "exchange", Name: exchange.Name, Op: "declare", Err: err}
		}
		d.logger.Debug("declared exchange", "name", exchange.Name, "type", exchange.Type)
	}

	for _, queue := range plan.Queues {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := ch.QueueDeclare(
			queue.Name,
			queue.Durable,
			queue.AutoDelete,
			false, // exclusive
			false, // no-wait
			queue.Arguments,
		)
		if err != nil {
			return &TopologyError{Component: "queue", Name: queue.Name, Op: "declare", Err: err}
		}
		d.logger.Debug("declared queue", "name", queue.Name)
	}

	for _, binding := range plan.QueueBindings {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := ch.QueueBind(binding.Queue, binding.RoutingKey, binding.Exchange, false, nil)
		if err != nil {
			return &TopologyError{Component: "binding", Name: binding.Queue, Op: "bind", Err: err}
		}
	}

	for _, binding := range plan.ExchangeBindings {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := ch.ExchangeBind(binding.Destination, binding.RoutingKey, binding.Source, false, nil)
		if err != nil {
			return &TopologyError{Component: "binding", Name: binding.Destination, Op: "bind", Err: err}
		}
	}

	return nil
}
