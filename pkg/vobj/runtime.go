// Package vobj implements boxed value objects.
//
// The payload of a value object is not stored in the object itself.
// Instead, it lives inside an identity map owned by a [Runtime], keyed by the identity of the object.
// Every live object can optionally be mirrored into an object store.
package vobj

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/FAU-CDI/vobox/pkg/ostore"
)

// cspell:words vobj ostore omap

// Options configure a runtime.
type Options struct {
	// Buckets is the number of buckets to use for each identity map.
	// If zero, uses [omap.DefaultBuckets].
	Buckets int

	// Limit is the maximum number of live objects of each kind.
	// Zero means no limit.
	Limit uint64

	// Store is the object store to mirror objects into.
	// Objects are only mirrored while the store is enabled.
	Store *ostore.Store

	// Logger receives debug information about object lifecycles.
	// A nil logger disables logging.
	Logger *slog.Logger
}

// Runtime owns the payloads of all value objects created through it.
//
// A Runtime is not safe for concurrent use.
type Runtime struct {
	store  *ostore.Store
	logger *slog.Logger

	last omap.ID // last identity handed out

	strings  table[stringData]
	integers table[int32]
}

// New creates a new runtime.
func New(opts Options) (*Runtime, error) {
	buckets := opts.Buckets
	if buckets == 0 {
		buckets = omap.DefaultBuckets
	}

	strs, err := omap.New[stringData](buckets)
	if err != nil {
		return nil, fmt.Errorf("failed to create string map: %w", err)
	}
	strs.Limit = opts.Limit

	ints, err := omap.New[int32](buckets)
	if err != nil {
		return nil, fmt.Errorf("failed to create integer map: %w", err)
	}
	ints.Limit = opts.Limit

	return &Runtime{
		store:  opts.Store,
		logger: opts.Logger,

		strings: table[stringData]{
			kind:    KindString,
			objects: strs,
			encode:  func(data *stringData) []byte { return FormatString(data.bytes) },
		},
		integers: table[int32]{
			kind:    KindInteger,
			objects: ints,
			encode:  func(value *int32) []byte { return FormatInteger(*value) },
		},
	}, nil
}

// Store returns the store objects are mirrored into, if any.
func (rt *Runtime) Store() *ostore.Store {
	if rt == nil {
		return nil
	}
	return rt.store
}

// Live returns the number of live objects of the given kind.
func (rt *Runtime) Live(kind Kind) uint64 {
	if rt == nil {
		return 0
	}

	var count uint64
	switch kind {
	case KindString:
		count, _ = rt.strings.objects.Count()
	case KindInteger:
		count, _ = rt.integers.objects.Count()
	}
	return count
}

// Close releases the identity maps of this runtime.
// Objects that are still live can no longer be resolved afterwards.
// Their records, if any, are kept in the store.
func (rt *Runtime) Close() error {
	if rt == nil {
		return nil
	}

	for _, kind := range Kinds {
		if leaked := rt.Live(kind); leaked > 0 {
			rt.warn("closing runtime with live objects", "kind", kind, "count", leaked)
		}
	}

	return errors.Join(
		rt.strings.objects.Close(),
		rt.integers.objects.Close(),
	)
}

func (rt *Runtime) debug(msg string, args ...any) {
	if rt.logger == nil {
		return
	}
	rt.logger.Debug(msg, args...)
}

func (rt *Runtime) warn(msg string, args ...any) {
	if rt.logger == nil {
		return
	}
	rt.logger.Warn(msg, args...)
}

// table holds the payloads of one kind of objects.
type table[V any] struct {
	kind    Kind
	objects *omap.Map[V]
	encode  func(*V) []byte
}

// record returns the store record for the given object.
// If value is nil, the record has no value.
func (tbl *table[V]) record(id omap.ID, value *V) *ostore.Record {
	rec := &ostore.Record{Type: string(tbl.kind), ID: id}
	if value != nil {
		rec.Value = tbl.encode(value)
	}
	return rec
}

// create registers a new object holding value and returns its identity.
//
// When the store is enabled, the object is persisted before create returns.
// On any failure the object is unregistered again, and the zero ID is returned.
func create[V any](rt *Runtime, tbl *table[V], value *V) (omap.ID, error) {
	if rt == nil {
		return 0, ErrInvalidArgument
	}

	id := rt.last.Inc()
	if err := tbl.objects.Set(id, value); err != nil {
		return 0, err
	}

	if rt.store.Enabled() {
		if err := rt.store.Save(tbl.record(id, value)); err != nil {
			tbl.objects.Delete(id)
			rt.debug("rolled back object", "kind", tbl.kind, "id", id, "err", err)
			return 0, err
		}
	}

	rt.debug("created object", "kind", tbl.kind, "id", id)
	return id, nil
}

// destroy unlinks and unregisters the object with the given identity.
// Unknown identities are ignored.
func destroy[V any](rt *Runtime, tbl *table[V], id omap.ID) {
	if rt == nil || !tbl.objects.Has(id) {
		return
	}

	if rt.store.Enabled() {
		rt.store.Unlink(tbl.record(id, nil))
	}
	tbl.objects.Delete(id)

	rt.debug("deleted object", "kind", tbl.kind, "id", id)
}
