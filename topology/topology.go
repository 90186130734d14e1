// Package topology plans RabbitMQ exchange, queue and binding declarations
// from endpoint addresses. A Plan is a pure value; applying it against a
// broker is the declarer's job.
package topology

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/glimte/amqpaddr-go/endpoint"
)

// Broker argument keys materialized from address fields at declaration time.
const (
	delayedTypeArg       = "x-delayed-type"
	alternateExchangeArg = "alternate-exchange"
)

// ExchangeDeclaration defines an exchange to be declared.
type ExchangeDeclaration struct {
	Name       string
	Type       string
	Durable    bool
	AutoDelete bool
	Arguments  amqp.Table
}

// QueueDeclaration defines a queue to be declared.
type QueueDeclaration struct {
	Name       string
	Durable    bool
	AutoDelete bool
	Arguments  amqp.Table
}

// QueueBinding routes messages from an exchange into a queue.
type QueueBinding struct {
	Queue      string
	Exchange   string
	RoutingKey string
}

// ExchangeBinding routes messages from a source exchange to a destination.
type ExchangeBinding struct {
	Source      string
	Destination string
	RoutingKey  string
}

// Plan is the complete set of declarations for one destination.
type Plan struct {
	Exchanges        []ExchangeDeclaration
	Queues           []QueueDeclaration
	QueueBindings    []QueueBinding
	ExchangeBindings []ExchangeBinding
}

// PlanOption configures planning.
type PlanOption func(*planConfig)

type planConfig struct {
	delayCompanion bool
}

// WithDelayCompanion also plans the delayed delivery companion exchange and
// binds it to the destination exchange.
func WithDelayCompanion() PlanOption {
	return func(cfg *planConfig) {
		cfg.delayCompanion = true
	}
}

// FromAddress plans the declarations a fully describes: the exchange itself,
// the bound queue when the address binds to one, and bindings to any
// additional destination exchanges. The delayed routing kind and alternate
// exchange become broker arguments on the exchange declaration.
func FromAddress(a *endpoint.Address, opts ...PlanOption) Plan {
	cfg := planConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	plan := Plan{
		Exchanges: []ExchangeDeclaration{exchangeFor(a)},
	}

	if a.BindToQueue {
		queueName := a.QueueName
		if queueName == "" {
			queueName = a.Name
		}
		plan.Queues = append(plan.Queues, QueueDeclaration{
			Name:       queueName,
			Durable:    a.Durable,
			AutoDelete: a.AutoDelete,
			Arguments:  argumentsTable(a.QueueArguments),
		})
		plan.QueueBindings = append(plan.QueueBindings, QueueBinding{
			Queue:    queueName,
			Exchange: a.Name,
		})
	}

	for _, destination := range a.BindExchanges {
		plan.ExchangeBindings = append(plan.ExchangeBindings, ExchangeBinding{
			Source:      a.Name,
			Destination: destination,
		})
	}

	if cfg.delayCompanion {
		delay := a.DelayAddress()
		plan.Exchanges = append(plan.Exchanges, exchangeFor(delay))
		plan.ExchangeBindings = append(plan.ExchangeBindings, ExchangeBinding{
			Source:      delay.Name,
			Destination: a.Name,
		})
	}

	return plan
}

func exchangeFor(a *endpoint.Address) ExchangeDeclaration {
	args := argumentsTable(a.ExchangeArguments)
	if a.DelayedType != "" {
		if args == nil {
			args = amqp.Table{}
		}
		args[delayedTypeArg] = a.DelayedType
	}
	if a.AlternateExchange != "" {
		if args == nil {
			args = amqp.Table{}
		}
		args[alternateExchangeArg] = a.AlternateExchange
	}
	return ExchangeDeclaration{
		Name:       a.Name,
		Type:       a.ExchangeType,
		Durable:    a.Durable,
		AutoDelete: a.AutoDelete,
		Arguments:  args,
	}
}

func argumentsTable(args map[string]string) amqp.Table {
	if len(args) == 0 {
		return nil
	}
	table := make(amqp.Table, len(args))
	for key, value := range args {
		table[key] = value
	}
	return table
}
