// Package endpoint implements the address grammar for RabbitMQ destinations.
//
// An Address fully describes how a client should reach a queue or exchange:
// broker coordinates (scheme, host, port, virtual host), the destination name,
// the exchange routing kind, durability flags, binding rules, delayed delivery
// configuration, and arbitrary broker arguments. Addresses are produced either
// by parsing a URI with Parse or by direct construction with New, and render
// back to a URI with URI or String such that parsing the rendered form yields
// an equal Address.
//
// Supported input schemes:
//   - amqp / amqps (aliases rabbitmq / rabbitmqs): the URI carries the broker
//     coordinates itself.
//   - queue: / exchange:: the URI names only the destination; broker
//     coordinates come from a separately supplied host URI. A queue address
//     binds the exchange to a same-named queue.
//
// Rendered URIs always use the canonical amqp / amqps schemes.
package endpoint
