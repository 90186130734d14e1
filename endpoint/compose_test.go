package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURIRendering(t *testing.T) {
	cases := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "default port and query are omitted",
			uri:  "amqp://localhost/input-queue",
			want: "amqp://localhost/input-queue",
		},
		{
			name: "non-default port is explicit",
			uri:  "amqp://localhost:5673/orders",
			want: "amqp://localhost:5673/orders",
		},
		{
			name: "secure default port is omitted",
			uri:  "amqps://broker.example:5671/orders",
			want: "amqps://broker.example/orders",
		},
		{
			name: "encoded virtual host survives",
			uri:  "amqps://broker.example/%2Fprod/orders?durable=false&autodelete=true",
			want: "amqps://broker.example/%2Fprod/orders?temporary=true",
		},
		{
			name: "alias renders as canonical scheme",
			uri:  "rabbitmq://localhost/orders",
			want: "amqp://localhost/orders",
		},
		{
			name: "non-default exchange type",
			uri:  "amqp://localhost/orders?type=direct",
			want: "amqp://localhost/orders?type=direct",
		},
		{
			name: "delayed kind implies the exchange type",
			uri:  "amqp://localhost/orders?type=direct&delayedtype=direct",
			want: "amqp://localhost/orders?delayedtype=direct",
		},
		{
			name: "durable false renders alone",
			uri:  "amqp://localhost/orders?durable=false",
			want: "amqp://localhost/orders?durable=false",
		},
		{
			name: "auto-delete renders alone",
			uri:  "amqp://localhost/orders?autodelete=true",
			want: "amqp://localhost/orders?autodelete=true",
		},
		{
			name: "queue reference renders as a direct URI",
			uri:  "queue:///audit-log?queueargs-x-max-length=1000",
			want: "amqp://broker/audit-log?bind=true&queueargs-x-max-length=1000",
		},
		{
			name: "exchange reference renders as a direct URI",
			uri:  "exchange:///order-events?type=topic",
			want: "amqp://broker/order-events?type=topic",
		},
		{
			name: "full option ordering",
			uri:  "amqp://localhost/orders?temporary=true&type=direct&bind=true&queue=order-worker&alternateexchange=unroutable&bindexchange=audit&bindexchange=metrics&exchangeargs-x-ha-policy=all&queueargs-x-max-length=1000",
			want: "amqp://localhost/orders?temporary=true&type=direct&bind=true&queue=order-worker&alternateexchange=unroutable&bindexchange=audit&bindexchange=metrics&exchangeargs-x-ha-policy=all&queueargs-x-max-length=1000",
		},
		{
			name: "argument maps render with sorted keys",
			uri:  "amqp://localhost/orders?queueargs-x-overflow=reject-publish&queueargs-x-max-length=1000",
			want: "amqp://localhost/orders?queueargs-x-max-length=1000&queueargs-x-overflow=reject-publish",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Parse(testHostURI, tc.uri)
			require.NoError(t, err)

			assert.Equal(t, tc.want, a.String())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	uris := []string{
		"amqp://localhost/input-queue",
		"amqp://localhost:5673/orders?temporary=true",
		"amqps://broker.example/%2Fprod/orders?durable=false&autodelete=true",
		"amqp://localhost/orders?type=direct&bind=true&queue=order-worker",
		"amqp://localhost/orders?delayedtype=topic&alternateexchange=unroutable",
		"amqp://localhost/orders?bindexchange=audit&bindexchange=metrics",
		"amqp://localhost/orders?exchangeargs-x-ha-policy=all&queueargs-x-max-length=1000&queueargs-x-overflow=reject-publish",
		"queue:///audit-log?queueargs-x-max-length=1000",
		"exchange:///order-events?type=topic&autodelete=true",
	}

	for _, uri := range uris {
		t.Run(uri, func(t *testing.T) {
			first, err := Parse(testHostURI, uri)
			require.NoError(t, err)

			second, err := Parse(testHostURI, first.String())
			require.NoError(t, err)

			assert.Equal(t, *first, *second)
		})
	}
}

func TestRoundTripConstructed(t *testing.T) {
	a, err := New("amqps://broker.example/prod", "orders",
		WithExchangeType(ExchangeTypeTopic),
		WithAutoDelete(true),
		WithBindToQueue("order-worker"),
		WithAlternateExchange("unroutable"),
		WithBindExchange("audit"),
		WithExchangeArgument("x-ha-policy", "all"),
		WithQueueArgument("x-max-length", "1000"),
	)
	require.NoError(t, err)

	parsed, err := Parse(testHostURI, a.String())
	require.NoError(t, err)

	assert.Equal(t, *a, *parsed)
}
