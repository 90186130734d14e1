package endpoint

// DelayAddress derives the delayed delivery companion for a. The companion
// carries the original name with DelaySuffix appended, is declared with the
// delayed message exchange kind, and records the routing kind it wraps in
// DelayedType. Queue binding does not carry over; durability, additional
// bindings and the alternate exchange do. The result shares no state with a.
func (a *Address) DelayAddress() *Address {
	d := a.clone()
	d.Name = a.Name + DelaySuffix
	d.DelayedType = a.routingKind()
	d.ExchangeType = ExchangeTypeDelayed
	d.BindToQueue = false
	d.QueueName = ""
	return d
}

// routingKind is the effective routing kind: the wrapped kind for a delayed
// exchange, the exchange type otherwise.
func (a *Address) routingKind() string {
	if a.DelayedType != "" {
		return a.DelayedType
	}
	return a.ExchangeType
}
