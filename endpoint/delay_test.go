package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayAddress(t *testing.T) {
	t.Run("derives the delayed companion", func(t *testing.T) {
		a, err := New(testHostURI, "orders", WithExchangeType(ExchangeTypeDirect))
		require.NoError(t, err)

		d := a.DelayAddress()

		assert.Equal(t, "orders_delay", d.Name)
		assert.Equal(t, ExchangeTypeDelayed, d.ExchangeType)
		assert.Equal(t, ExchangeTypeDirect, d.DelayedType)
		assert.False(t, d.BindToQueue)
		assert.Empty(t, d.QueueName)
	})

	t.Run("durability, bindings and alternate carry over", func(t *testing.T) {
		a, err := New(testHostURI, "orders",
			WithTemporary(),
			WithBindToQueue("order-worker"),
			WithAlternateExchange("unroutable"),
			WithBindExchange("audit"),
			WithExchangeArgument("x-ha-policy", "all"),
		)
		require.NoError(t, err)

		d := a.DelayAddress()

		assert.True(t, d.AutoDelete)
		assert.False(t, d.Durable)
		assert.Equal(t, "unroutable", d.AlternateExchange)
		assert.Equal(t, []string{"audit"}, d.BindExchanges)
		assert.Equal(t, map[string]string{"x-ha-policy": "all"}, d.ExchangeArguments)
	})

	t.Run("already delayed address keeps its wrapped kind", func(t *testing.T) {
		a, err := New(testHostURI, "orders", WithDelayedType(ExchangeTypeTopic))
		require.NoError(t, err)

		d := a.DelayAddress()

		assert.Equal(t, "orders_delay", d.Name)
		assert.Equal(t, ExchangeTypeTopic, d.DelayedType)
		assert.Equal(t, ExchangeTypeDelayed, d.ExchangeType)
	})

	t.Run("shares no state with the source", func(t *testing.T) {
		a, err := New(testHostURI, "orders",
			WithBindExchange("audit"),
			WithExchangeArgument("x-ha-policy", "all"),
			WithQueueArgument("x-max-length", "1000"),
		)
		require.NoError(t, err)

		d := a.DelayAddress()
		d.ExchangeArguments["x-ha-policy"] = "nodes"
		d.QueueArguments["x-max-length"] = "9"
		d.BindExchanges[0] = "changed"

		assert.Equal(t, "all", a.ExchangeArguments["x-ha-policy"])
		assert.Equal(t, "1000", a.QueueArguments["x-max-length"])
		assert.Equal(t, []string{"audit"}, a.BindExchanges)
	})

	t.Run("round-trips through its URI", func(t *testing.T) {
		a, err := New(testHostURI, "orders", WithExchangeType(ExchangeTypeDirect))
		require.NoError(t, err)
		d := a.DelayAddress()

		parsed, err := Parse(testHostURI, d.String())
		require.NoError(t, err)

		assert.Equal(t, *d, *parsed)
	})
}
