package endpoint

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Fixed query option keys. Keys are matched case-insensitively; unknown keys
// are ignored so newer producers stay parseable.
const (
	optionTemporary    = "temporary"
	optionDurable      = "durable"
	optionAutoDelete   = "autodelete"
	optionType         = "type"
	optionBind         = "bind"
	optionQueue        = "queue"
	optionDelayedType  = "delayedtype"
	optionAlternate    = "alternateexchange"
	optionBindExchange = "bindexchange"
)

// Query key prefixes carrying broker-specific declaration arguments. Prefixed
// keys are claimed before any fixed key is considered.
const (
	ExchangeArgPrefix = "exchangeargs-"
	QueueArgPrefix    = "queueargs-"
)

type parseStrategy int

const (
	parseDirect parseStrategy = iota
	parseQueueRef
	parseExchangeRef
)

type schemeInfo struct {
	strategy  parseStrategy
	canonical string
}

// schemes maps recognized scheme tokens to their parse strategy. Direct
// schemes carry broker coordinates in the URI itself and normalize to the
// canonical amqp / amqps spelling; reference schemes name only the
// destination and take coordinates from the host base URI.
var schemes = map[string]schemeInfo{
	"amqp":      {parseDirect, "amqp"},
	"amqps":     {parseDirect, "amqps"},
	"rabbitmq":  {parseDirect, "amqp"},
	"rabbitmqs": {parseDirect, "amqps"},
	"queue":     {parseQueueRef, ""},
	"exchange":  {parseExchangeRef, ""},
}

// Parse builds an Address from rawURI. hostBaseURI supplies the broker
// coordinates for queue: and exchange: addresses and is ignored for direct
// schemes. A destination named "*" is replaced with a generated unique name.
//
// Option values that fail their expected parse (for example a non-boolean
// durable) are dropped and the field keeps its default; an unrecognized
// scheme or an invalid destination name fails parsing.
func Parse(hostBaseURI, rawURI string, opts ...Option) (*Address, error) {
	cfg := newConfig(opts)

	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, fmt.Errorf("endpoint: parse address %q: %w", rawURI, err)
	}
	info, ok := schemes[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, &UnsupportedSchemeError{Scheme: u.Scheme, URI: rawURI}
	}

	a := &Address{
		VirtualHost:  "/",
		ExchangeType: ExchangeTypeFanout,
		Durable:      true,
	}

	switch info.strategy {
	case parseDirect:
		a.Scheme = info.canonical
		a.Host = u.Hostname()
		a.Port = resolvePort(u.Port(), a.Scheme)
		a.VirtualHost, a.Name = splitDestinationPath(u.EscapedPath())
	case parseQueueRef, parseExchangeRef:
		if err := resolveHost(a, hostBaseURI); err != nil {
			return nil, err
		}
		a.Name = referenceName(u)
		a.BindToQueue = info.strategy == parseQueueRef
	}

	for _, set := range cfg.setters {
		set(a)
	}

	applyQueryOptions(a, u.RawQuery)

	if err := finishName(a, cfg.validator); err != nil {
		return nil, err
	}
	return a, nil
}

// resolveHost fills broker coordinates from a direct-scheme base URI.
func resolveHost(a *Address, hostBaseURI string) error {
	b, err := url.Parse(hostBaseURI)
	if err != nil {
		return fmt.Errorf("endpoint: parse host address %q: %w", hostBaseURI, err)
	}
	info, ok := schemes[strings.ToLower(b.Scheme)]
	if !ok || info.strategy != parseDirect {
		return &UnsupportedSchemeError{Scheme: b.Scheme, URI: hostBaseURI}
	}
	a.Scheme = info.canonical
	a.Host = b.Hostname()
	a.Port = resolvePort(b.Port(), a.Scheme)
	a.VirtualHost = baseVirtualHost(b.EscapedPath())
	return nil
}

// resolvePort keeps an explicit port and otherwise infers the standard
// listener port for the scheme's security mode.
func resolvePort(explicit, scheme string) int {
	if explicit == "" {
		return defaultPort(scheme)
	}
	port, err := strconv.Atoi(explicit)
	if err != nil {
		return defaultPort(scheme)
	}
	return port
}

// splitDestinationPath splits "/name" or "/vhost/name". The segments stay
// percent-encoded until split so an encoded slash inside the virtual host
// survives. Anything deeper than two segments lands in the name and fails
// validation there.
func splitDestinationPath(escaped string) (vhost, name string) {
	trimmed := strings.TrimPrefix(escaped, "/")
	if trimmed == "" {
		return "/", ""
	}
	segments := strings.SplitN(trimmed, "/", 2)
	if len(segments) == 1 {
		return "/", unescapeSegment(segments[0])
	}
	return unescapeSegment(segments[0]), unescapeSegment(segments[1])
}

// baseVirtualHost extracts the virtual host from a base URI path, "/" when
// the path is empty.
func baseVirtualHost(escaped string) string {
	trimmed := strings.Trim(escaped, "/")
	if trimmed == "" {
		return "/"
	}
	return unescapeSegment(trimmed)
}

// referenceName extracts the destination name from a queue: or exchange: URI,
// accepting both the queue:///name and the opaque queue:name spelling.
func referenceName(u *url.URL) string {
	if u.Opaque != "" {
		return unescapeSegment(u.Opaque)
	}
	return unescapeSegment(strings.TrimPrefix(u.EscapedPath(), "/"))
}

func unescapeSegment(segment string) string {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}

type queryPair struct {
	key   string
	value string
}

// splitQuery decodes the raw query preserving pair order, which url.Values
// would lose. Pairs that fail decoding are dropped.
func splitQuery(rawQuery string) []queryPair {
	if rawQuery == "" {
		return nil
	}
	var pairs []queryPair
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		pairs = append(pairs, queryPair{key: strings.ToLower(key), value: value})
	}
	return pairs
}

type parseState struct {
	addr          *Address
	temporarySeen bool
	temporary     bool
}

type queryRule struct {
	match func(key string) bool
	apply func(st *parseState, key, value string)
}

func matchExact(token string) func(string) bool {
	return func(key string) bool { return key == token }
}

func matchPrefix(prefix string) func(string) bool {
	return func(key string) bool { return strings.HasPrefix(key, prefix) }
}

// queryRules is evaluated in order for each pair; the first matching rule
// claims the key. Argument prefixes come first so a prefixed key is never
// reinterpreted as a fixed option.
var queryRules = []queryRule{
	{matchPrefix(ExchangeArgPrefix), func(st *parseState, key, value string) {
		putArg(&st.addr.ExchangeArguments, strings.TrimPrefix(key, ExchangeArgPrefix), value)
	}},
	{matchPrefix(QueueArgPrefix), func(st *parseState, key, value string) {
		putArg(&st.addr.QueueArguments, strings.TrimPrefix(key, QueueArgPrefix), value)
	}},
	{matchExact(optionTemporary), func(st *parseState, _, value string) {
		if b, ok := parseFlag(value); ok {
			st.temporarySeen = true
			st.temporary = b
		}
	}},
	{matchExact(optionDurable), func(st *parseState, _, value string) {
		if b, ok := parseFlag(value); ok {
			st.addr.Durable = b
		}
	}},
	{matchExact(optionAutoDelete), func(st *parseState, _, value string) {
		if b, ok := parseFlag(value); ok {
			st.addr.AutoDelete = b
		}
	}},
	{matchExact(optionType), func(st *parseState, _, value string) {
		if value != "" {
			st.addr.ExchangeType = value
		}
	}},
	{matchExact(optionBind), func(st *parseState, _, value string) {
		if b, ok := parseFlag(value); ok {
			st.addr.BindToQueue = b
		}
	}},
	{matchExact(optionQueue), func(st *parseState, _, value string) {
		st.addr.QueueName = value
	}},
	{matchExact(optionDelayedType), func(st *parseState, _, value string) {
		if value != "" {
			st.addr.DelayedType = value
		}
	}},
	{matchExact(optionAlternate), func(st *parseState, _, value string) {
		if value != "" {
			st.addr.AlternateExchange = value
		}
	}},
	{matchExact(optionBindExchange), func(st *parseState, _, value string) {
		addBindExchange(st.addr, value)
	}},
}

// applyQueryOptions runs the rule table over the query pairs. The temporary
// shorthand wins over durable and autodelete no matter where it appears, and
// a delayed routing kind forces the exchange type last.
func applyQueryOptions(a *Address, rawQuery string) {
	st := &parseState{addr: a}
	for _, pair := range splitQuery(rawQuery) {
		for _, rule := range queryRules {
			if rule.match(pair.key) {
				rule.apply(st, pair.key, pair.value)
				break
			}
		}
	}
	if st.temporarySeen {
		a.AutoDelete = st.temporary
		a.Durable = !st.temporary
	}
	if a.DelayedType != "" {
		a.ExchangeType = ExchangeTypeDelayed
	}
}

// putArg inserts a prefix-stripped argument, dropping an empty remainder.
func putArg(args *map[string]string, key, value string) {
	if key == "" {
		return
	}
	if *args == nil {
		*args = make(map[string]string)
	}
	(*args)[key] = value
}

func parseFlag(value string) (bool, bool) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return b, true
}
