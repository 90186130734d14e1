package endpoint

import (
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// URI renders the address back to its canonical URI form. The output is
// deterministic: the port is omitted when it is the default for the scheme,
// query options appear in a fixed order, and argument maps are emitted with
// sorted keys. Parsing the rendered URI yields an Address equal to a.
func (a *Address) URI() *url.URL {
	u := &url.URL{
		Scheme: a.Scheme,
		Host:   a.hostPort(),
	}
	if a.VirtualHost == "/" {
		u.Path = "/" + a.Name
	} else {
		u.Path = "/" + a.VirtualHost + "/" + a.Name
		u.RawPath = "/" + url.PathEscape(a.VirtualHost) + "/" + url.PathEscape(a.Name)
	}
	u.RawQuery = a.encodeQuery()
	return u
}

// String renders the address as a URI string.
func (a *Address) String() string {
	return a.URI().String()
}

func (a *Address) hostPort() string {
	if a.Port == defaultPort(a.Scheme) || a.Port == 0 {
		return a.Host
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// encodeQuery emits query options in the fixed order the parser's precedence
// rules expect: durability shorthand, exchange type, queue binding, queue
// name, delayed kind, alternate exchange, additional bindings, then the two
// argument maps.
func (a *Address) encodeQuery() string {
	var pairs []string
	add := func(key, value string) {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	// At most one of the three durability options is emitted; temporary is
	// the shorthand for auto-delete and non-durable together.
	switch {
	case a.AutoDelete && !a.Durable:
		add(optionTemporary, "true")
	case !a.Durable:
		add(optionDurable, "false")
	case a.AutoDelete:
		add(optionAutoDelete, "true")
	}

	// The exchange type is implied by the delayed kind, so it is only
	// written when it deviates from the default on its own.
	if a.ExchangeType != ExchangeTypeFanout && a.DelayedType == "" {
		add(optionType, a.ExchangeType)
	}
	if a.BindToQueue {
		add(optionBind, "true")
	}
	if a.QueueName != "" {
		add(optionQueue, a.QueueName)
	}
	if a.DelayedType != "" {
		add(optionDelayedType, a.DelayedType)
	}
	if a.AlternateExchange != "" {
		add(optionAlternate, a.AlternateExchange)
	}
	for _, name := range a.BindExchanges {
		add(optionBindExchange, name)
	}
	for _, key := range sortedKeys(a.ExchangeArguments) {
		add(ExchangeArgPrefix+key, a.ExchangeArguments[key])
	}
	for _, key := range sortedKeys(a.QueueArguments) {
		add(QueueArgPrefix+key, a.QueueArguments[key])
	}

	return strings.Join(pairs, "&")
}

func sortedKeys(args map[string]string) []string {
	if len(args) == 0 {
		return nil
	}
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
