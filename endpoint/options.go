package endpoint

// Option configures address construction and parsing.
type Option func(*config)

type config struct {
	validator EntityNameValidator
	setters   []func(*Address)
}

func newConfig(opts []Option) *config {
	cfg := &config{validator: DefaultNameValidator}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithNameValidator replaces the destination name validator.
func WithNameValidator(v EntityNameValidator) Option {
	return func(cfg *config) {
		cfg.validator = v
	}
}

func setter(set func(*Address)) Option {
	return func(cfg *config) {
		cfg.setters = append(cfg.setters, set)
	}
}

// WithDurable sets whether the destination survives broker restarts.
func WithDurable(durable bool) Option {
	return setter(func(a *Address) { a.Durable = durable })
}

// WithAutoDelete sets whether the destination is removed when unused.
func WithAutoDelete(autoDelete bool) Option {
	return setter(func(a *Address) { a.AutoDelete = autoDelete })
}

// WithTemporary marks the destination auto-delete and non-durable.
func WithTemporary() Option {
	return setter(func(a *Address) {
		a.AutoDelete = true
		a.Durable = false
	})
}

// WithExchangeType sets the routing kind.
func WithExchangeType(exchangeType string) Option {
	return setter(func(a *Address) { a.ExchangeType = exchangeType })
}

// WithBindToQueue binds the exchange to a queue named queueName, or to a
// same-named queue when queueName is empty.
func WithBindToQueue(queueName string) Option {
	return setter(func(a *Address) {
		a.BindToQueue = true
		a.QueueName = queueName
	})
}

// WithDelayedType marks the destination as a delayed delivery exchange
// wrapping the given routing kind.
func WithDelayedType(routingKind string) Option {
	return setter(func(a *Address) { a.DelayedType = routingKind })
}

// WithAlternateExchange sets the fallback for unroutable messages.
func WithAlternateExchange(name string) Option {
	return setter(func(a *Address) { a.AlternateExchange = name })
}

// WithBindExchange adds destinations this exchange binds to. Duplicates are
// collapsed, keeping first-seen order.
func WithBindExchange(names ...string) Option {
	return setter(func(a *Address) {
		for _, name := range names {
			addBindExchange(a, name)
		}
	})
}

// WithExchangeArgument adds a broker-specific exchange declaration argument.
func WithExchangeArgument(key, value string) Option {
	return setter(func(a *Address) {
		if a.ExchangeArguments == nil {
			a.ExchangeArguments = make(map[string]string)
		}
		a.ExchangeArguments[key] = value
	})
}

// WithQueueArgument adds a broker-specific queue declaration argument.
func WithQueueArgument(key, value string) Option {
	return setter(func(a *Address) {
		if a.QueueArguments == nil {
			a.QueueArguments = make(map[string]string)
		}
		a.QueueArguments[key] = value
	})
}

func addBindExchange(a *Address, name string) {
	if name == "" {
		return
	}
	for _, existing := range a.BindExchanges {
		if existing == name {
			return
		}
	}
	a.BindExchanges = append(a.BindExchanges, name)
}
