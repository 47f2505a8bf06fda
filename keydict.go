package boon

import "github.com/amilto-com/boon/internal/wire"

// commonKeys is the static common-key dictionary: 128 frequent object keys
// encodable as a single byte (keyCommonBase + index). The list is part of
// the wire format; it is identical across implementations of a format
// version, and any change to it is a new version, never an in-place edit.
var commonKeys = [...]string{
	"id", "type", "name", "value", "data", "key", "status", "code",
	"message", "error", "result", "text", "content", "role", "user", "model",
	"object", "created", "usage", "index", "count", "total", "items", "item",
	"label", "title", "description", "url", "method", "path", "query", "params",
	"headers", "body", "token", "tokens", "prompt", "completion", "temperature", "top_p",
	"max_tokens", "stop", "stream", "choices", "delta", "finish_reason", "logprobs", "function",
	"functions", "arguments", "tool", "tools", "tool_calls", "tool_call_id", "system", "assistant",
	"metadata", "options", "config", "settings", "version", "format", "language", "source",
	"target", "input", "output", "context", "session", "request", "response", "timestamp",
	"time", "date", "created_at", "updated_at", "deleted_at", "email", "phone", "address",
	"city", "country", "state", "zip", "first_name", "last_name", "username", "password",
	"age", "tags", "category", "price", "currency", "amount", "quantity", "score",
	"rating", "rank", "weight", "width", "height", "size", "length", "offset",
	"limit", "page", "per_page", "sort", "order", "filter", "search", "enabled",
	"active", "visible", "deleted", "success", "children", "parent", "node", "edges",
	"properties", "attributes", "fields", "schema", "summary", "level", "kind", "extra",
}

// commonKeyIndex is the reverse lookup, built once at load.
var commonKeyIndex = func() map[string]int {
	m := make(map[string]int, len(commonKeys))
	for i, k := range commonKeys {
		m[k] = i
	}
	return m
}()

// CommonKeys returns a copy of the static common-key dictionary, mostly for
// tooling and tests.
func CommonKeys() []string {
	keys := make([]string, len(commonKeys))
	copy(keys, commonKeys[:])
	return keys
}

// keyTable is the per-message key table: distinct non-common keys in
// first-encounter order, plus the reverse index the encoder needs. It is
// scratch state scoped to one encode call.
type keyTable struct {
	keys  []string
	index map[string]int
}

// keyCollector gathers key usage during the pre-encode traversal. Keys
// already in the common dictionary are excluded: they cost one byte with or
// without a table, so they never influence the decision.
type keyCollector struct {
	order []string
	count map[string]int
}

func (c *keyCollector) collect(v Value) {
	switch v.Kind {
	case KindArray:
		for _, e := range v.A {
			c.collect(e)
		}
	case KindObject:
		for _, m := range v.O {
			if _, common := commonKeyIndex[m.Key]; !common {
				if _, seen := c.count[m.Key]; !seen {
					c.order = append(c.order, m.Key)
				}
				c.count[m.Key]++
			}
			c.collect(m.Value)
		}
	}
}

// literalKeySize returns the encoded size of key as a literal: band byte
// (plus explicit length field when the direct band is too small) plus the
// raw bytes.
func literalKeySize(key string) int {
	n := len(key)
	switch {
	case n <= keyLitMaxDirect:
		return 1 + n
	case n <= 0xFFFF:
		return 3 + n
	default:
		return 5 + n
	}
}

// planKeyTable runs the collection pass over v and decides whether to use a
// per-message key table. It returns nil when no table should be written.
//
// The decision is deterministic: collection is a pre-order traversal in
// member order, so equal inputs always produce equal tables.
func planKeyTable(v Value, mode KeyTableMode, logger *Logger) *keyTable {
	if mode == KeyTableOff {
		return nil
	}

	c := keyCollector{count: make(map[string]int)}
	c.collect(v)
	distinct := len(c.order)
	if distinct == 0 {
		return nil
	}

	if mode == KeyTableAuto {
		// A table full of one-shot keys is pure overhead: every entry is
		// written once in the table and referenced once.
		singles := 0
		for _, k := range c.order {
			if c.count[k] == 1 {
				singles++
			}
		}
		if singles*2 > distinct {
			return nil
		}

		// One extra header byte for the table discriminator, the entry
		// count, each key once, and a reference per occurrence.
		literalCost := 0
		tableCost := 1 + wire.UvarintLen(uint64(distinct))
		for i, k := range c.order {
			occ := c.count[k]
			literalCost += occ * literalKeySize(k)
			tableCost += wire.UvarintLen(uint64(len(k))) + len(k)
			tableCost += occ * (1 + wire.UvarintLen(uint64(i)))
		}
		if tableCost >= literalCost {
			if logger != nil {
				logger.Debug("key table rejected",
					"distinct", distinct,
					"literal_cost", literalCost,
					"table_cost", tableCost,
				)
			}
			return nil
		}
		if logger != nil {
			logger.Debug("key table enabled",
				"distinct", distinct,
				"literal_cost", literalCost,
				"table_cost", tableCost,
			)
		}
	}

	t := &keyTable{
		keys:  c.order,
		index: make(map[string]int, distinct),
	}
	for i, k := range c.order {
		t.index[k] = i
	}
	return t
}
