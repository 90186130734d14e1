package topology

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimte/amqpaddr-go/endpoint"
)

const testHostURI = "amqp://broker/"

func TestFromAddress(t *testing.T) {
	t.Run("plain exchange", func(t *testing.T) {
		a, err := endpoint.New(testHostURI, "order-events", endpoint.WithExchangeType(endpoint.ExchangeTypeTopic))
		require.NoError(t, err)

		plan := FromAddress(a)

		require.Len(t, plan.Exchanges, 1)
		assert.Equal(t, ExchangeDeclaration{
			Name:    "order-events",
			Type:    endpoint.ExchangeTypeTopic,
			Durable: true,
		}, plan.Exchanges[0])
		assert.Empty(t, plan.Queues)
		assert.Empty(t, plan.QueueBindings)
	})

	t.Run("queue-bound address plans queue and binding", func(t *testing.T) {
		a, err := endpoint.Parse(testHostURI, "queue:///audit-log?queueargs-x-max-length=1000")
		require.NoError(t, err)

		plan := FromAddress(a)

		require.Len(t, plan.Queues, 1)
		assert.Equal(t, QueueDeclaration{
			Name:      "audit-log",
			Durable:   true,
			Arguments: amqp.Table{"x-max-length": "1000"},
		}, plan.Queues[0])
		require.Len(t, plan.QueueBindings, 1)
		assert.Equal(t, QueueBinding{Queue: "audit-log", Exchange: "audit-log"}, plan.QueueBindings[0])
	})

	t.Run("explicit queue name wins", func(t *testing.T) {
		a, err := endpoint.New(testHostURI, "orders", endpoint.WithBindToQueue("order-worker"))
		require.NoError(t, err)

		plan := FromAddress(a)

		require.Len(t, plan.Queues, 1)
		assert.Equal(t, "order-worker", plan.Queues[0].Name)
		assert.Equal(t, QueueBinding{Queue: "order-worker", Exchange: "orders"}, plan.QueueBindings[0])
	})

	t.Run("delayed kind and alternate exchange become arguments", func(t *testing.T) {
		a, err := endpoint.New(testHostURI, "orders",
			endpoint.WithDelayedType(endpoint.ExchangeTypeDirect),
			endpoint.WithAlternateExchange("unroutable"),
		)
		require.NoError(t, err)

		plan := FromAddress(a)

		ex := plan.Exchanges[0]
		assert.Equal(t, endpoint.ExchangeTypeDelayed, ex.Type)
		assert.Equal(t, amqp.Table{
			"x-delayed-type":     endpoint.ExchangeTypeDirect,
			"alternate-exchange": "unroutable",
		}, ex.Arguments)
	})

	t.Run("additional bindings become exchange bindings", func(t *testing.T) {
		a, err := endpoint.New(testHostURI, "orders", endpoint.WithBindExchange("audit", "metrics"))
		require.NoError(t, err)

		plan := FromAddress(a)

		assert.Equal(t, []ExchangeBinding{
			{Source: "orders", Destination: "audit"},
			{Source: "orders", Destination: "metrics"},
		}, plan.ExchangeBindings)
	})

	t.Run("delay companion adds its exchange and binding", func(t *testing.T) {
		a, err := endpoint.New(testHostURI, "orders", endpoint.WithExchangeType(endpoint.ExchangeTypeDirect))
		require.NoError(t, err)

		plan := FromAddress(a, WithDelayCompanion())

		require.Len(t, plan.Exchanges, 2)
		companion := plan.Exchanges[1]
		assert.Equal(t, "orders_delay", companion.Name)
		assert.Equal(t, endpoint.ExchangeTypeDelayed, companion.Type)
		assert.Equal(t, amqp.Table{"x-delayed-type": endpoint.ExchangeTypeDirect}, companion.Arguments)
		assert.Contains(t, plan.ExchangeBindings, ExchangeBinding{Source: "orders_delay", Destination: "orders"})
	})

	t.Run("exchange arguments reach the declaration", func(t *testing.T) {
		a, err := endpoint.New(testHostURI, "orders", endpoint.WithExchangeArgument("x-ha-policy", "all"))
		require.NoError(t, err)

		plan := FromAddress(a)

		assert.Equal(t, amqp.Table{"x-ha-policy": "all"}, plan.Exchanges[0].Arguments)
	})
}
