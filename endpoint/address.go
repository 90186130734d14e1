package endpoint

import (
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange routing kinds. ExchangeTypeDelayed is provided by the delayed
// message plugin; the routing kind it wraps travels in Address.DelayedType.
const (
	ExchangeTypeFanout  = amqp.ExchangeFanout
	ExchangeTypeDirect  = amqp.ExchangeDirect
	ExchangeTypeTopic   = amqp.ExchangeTopic
	ExchangeTypeHeaders = amqp.ExchangeHeaders
	ExchangeTypeDelayed = "x-delayed-message"
)

// Broker listener ports used when a URI omits the port.
const (
	DefaultPort       = 5672
	DefaultSecurePort = 5671
)

// WildcardName in a URI or New call is replaced with a generated unique name.
const WildcardName = "*"

// DelaySuffix is appended to a destination name to form its delayed delivery
// companion exchange.
const DelaySuffix = "_delay"

// Address describes a broker destination and how to declare and reach it.
// An Address is a value: construct it with Parse or New and treat it as
// read-only afterwards. Derived addresses are independent copies.
type Address struct {
	// Scheme is the canonical transport scheme, amqp or amqps.
	Scheme string

	// Host and Port are the broker coordinates. Port is always resolved,
	// defaulting to the standard listener port for the scheme.
	Host string
	Port int

	// VirtualHost is the broker namespace, "/" by default.
	VirtualHost string

	// Name identifies the destination. Never empty or the wildcard after
	// construction.
	Name string

	// ExchangeType is the routing kind, fanout by default. Forced to
	// ExchangeTypeDelayed whenever DelayedType is set.
	ExchangeType string

	Durable    bool
	AutoDelete bool

	// BindToQueue binds the exchange to a same-named queue. QueueName, when
	// set, names that queue instead.
	BindToQueue bool
	QueueName   string

	// DelayedType is the routing kind wrapped by a delayed delivery
	// exchange. Empty when the destination is not delayed.
	DelayedType string

	// AlternateExchange receives messages the exchange cannot route.
	AlternateExchange string

	// BindExchanges are additional destinations this exchange binds to, in
	// first-seen order with duplicates collapsed.
	BindExchanges []string

	// ExchangeArguments and QueueArguments are broker-specific declaration
	// arguments.
	ExchangeArguments map[string]string
	QueueArguments    map[string]string
}

// New constructs an Address for name on the broker identified by hostBaseURI.
// hostBaseURI must use a direct scheme (amqp, amqps or an alias) and supplies
// scheme, host, port and virtual host. A name of "*" is replaced with a
// generated unique name before validation.
func New(hostBaseURI, name string, opts ...Option) (*Address, error) {
	cfg := newConfig(opts)

	a := &Address{
		VirtualHost:  "/",
		ExchangeType: ExchangeTypeFanout,
		Durable:      true,
	}
	if err := resolveHost(a, hostBaseURI); err != nil {
		return nil, err
	}
	a.Name = name
	for _, set := range cfg.setters {
		set(a)
	}
	if a.DelayedType != "" {
		a.ExchangeType = ExchangeTypeDelayed
	}
	if err := finishName(a, cfg.validator); err != nil {
		return nil, err
	}
	return a, nil
}

// finishName substitutes the wildcard and validates the resulting name.
func finishName(a *Address, v EntityNameValidator) error {
	if a.Name == WildcardName {
		a.Name = generateName()
	}
	return v.Validate(a.Name)
}

// generateName returns a fresh broker-legal unique destination name.
func generateName() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// clone returns a deep copy sharing no state with a.
func (a *Address) clone() *Address {
	c := *a
	if a.BindExchanges != nil {
		c.BindExchanges = append([]string(nil), a.BindExchanges...)
	}
	c.ExchangeArguments = cloneArgs(a.ExchangeArguments)
	c.QueueArguments = cloneArgs(a.QueueArguments)
	return &c
}

func cloneArgs(args map[string]string) map[string]string {
	if args == nil {
		return nil
	}
	c := make(map[string]string, len(args))
	for k, v := range args {
		c[k] = v
	}
	return c
}

// secure reports whether the scheme denotes a TLS listener.
func secureScheme(scheme string) bool {
	return strings.HasSuffix(scheme, "s")
}

// defaultPort returns the standard listener port for the scheme.
func defaultPort(scheme string) int {
	if secureScheme(scheme) {
		return DefaultSecurePort
	}
	return DefaultPort
}
