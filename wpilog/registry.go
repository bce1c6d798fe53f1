package wpilog

import (
	"fmt"

	"github.com/frclib-go/datalog/errs"
	"github.com/frclib-go/datalog/internal/hash"
	"github.com/frclib-go/datalog/record"
)

// Entry describes one named, typed data stream in a log. An entry is live
// between its Start and Finish control records; names are unique among
// live entries and an id may be reused only after a Finish retires it.
type Entry struct {
	ID       uint32
	Name     string
	Type     string
	Metadata string

	// CreatedAt is the timestamp of the Start record; FinishedAt is the
	// timestamp of the Finish record, valid only when Finished is true.
	CreatedAt  uint64
	FinishedAt uint64
	Finished   bool

	typeID uint64
}

// entryTable is the lookup state shared by the two registry roles. The
// writer registry owns it authoritatively; the replay registry derives it
// from control records in file order. Keeping the mutation helpers here
// and the role logic in the wrappers keeps allocation and replay from
// cross-talking.
type entryTable struct {
	live       map[uint32]*Entry
	liveByName map[string]*Entry
}

func newEntryTable() entryTable {
	return entryTable{
		live:       make(map[uint32]*Entry),
		liveByName: make(map[string]*Entry),
	}
}

// Live returns the live entry with the given id.
func (t *entryTable) Live(id uint32) (*Entry, bool) {
	e, ok := t.live[id]
	return e, ok
}

// LiveByName returns the live entry with the given name.
func (t *entryTable) LiveByName(name string) (*Entry, bool) {
	e, ok := t.liveByName[name]
	return e, ok
}

func (t *entryTable) start(e *Entry) error {
	if _, ok := t.live[e.ID]; ok {
		return fmt.Errorf("%w: id %d started before its Finish", errs.ErrEntryIDInUse, e.ID)
	}
	if _, ok := t.liveByName[e.Name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrEntryNameInUse, e.Name)
	}

	t.live[e.ID] = e
	t.liveByName[e.Name] = e

	return nil
}

func (t *entryTable) finish(id uint32, timestamp uint64) (*Entry, error) {
	e, ok := t.live[id]
	if !ok {
		return nil, fmt.Errorf("%w: finish of id %d", errs.ErrEntryNotFound, id)
	}

	e.Finished = true
	e.FinishedAt = timestamp
	delete(t.live, id)
	delete(t.liveByName, e.Name)

	return e, nil
}

func (t *entryTable) setMetadata(id uint32, metadata string) (*Entry, error) {
	e, ok := t.live[id]
	if !ok {
		return nil, fmt.Errorf("%w: metadata update of id %d", errs.ErrEntryNotFound, id)
	}

	e.Metadata = metadata

	return e, nil
}

// writerRegistry is the authoritative write-side registry: it allocates
// entry ids and decides when a Start record must be emitted.
type writerRegistry struct {
	entryTable
	nextID uint32
}

func newWriterRegistry() writerRegistry {
	// Id 0 is reserved for control records; allocation starts at 1.
	return writerRegistry{entryTable: newEntryTable(), nextID: record.ControlEntryID + 1}
}

// getOrCreate returns the live entry for name, creating one with the next
// unused id when none exists. created reports whether a Start record must
// be emitted. A live name under a different type is a protocol error.
func (r *writerRegistry) getOrCreate(name, entryType, metadata string, timestamp uint64) (e *Entry, created bool, err error) {
	typeID := hash.TypeID(entryType)

	if e, ok := r.LiveByName(name); ok {
		if e.typeID != typeID {
			return nil, false, fmt.Errorf("%w: %q is live as %q, requested %q",
				errs.ErrEntryTypeMismatch, name, e.Type, entryType)
		}

		return e, false, nil
	}

	e = &Entry{
		ID:        r.nextID,
		Name:      name,
		Type:      entryType,
		Metadata:  metadata,
		CreatedAt: timestamp,
		typeID:    typeID,
	}
	if err := r.start(e); err != nil {
		return nil, false, err
	}
	r.nextID++

	return e, true, nil
}

// replayRegistry is the read-side registry, derived purely from observed
// control records in file order.
type replayRegistry struct {
	entryTable
}

func newReplayRegistry() replayRegistry {
	return replayRegistry{entryTable: newEntryTable()}
}

// apply replays one parsed control record and returns the event it
// produces. Violations of the control protocol return a nil event and an
// error wrapping errs.ErrProtocol; the registry is unchanged by a
// violating record, so replay may continue.
func (r *replayRegistry) apply(ctrl record.Control, timestamp uint64) (Event, error) {
	switch ctrl.Kind {
	case record.ControlStart:
		e := &Entry{
			ID:        ctrl.EntryID,
			Name:      ctrl.Name,
			Type:      ctrl.Type,
			Metadata:  ctrl.Metadata,
			CreatedAt: timestamp,
			typeID:    hash.TypeID(ctrl.Type),
		}
		if err := r.start(e); err != nil {
			return nil, err
		}

		return StartEvent{Entry: *e, Timestamp: timestamp}, nil

	case record.ControlFinish:
		if _, err := r.finish(ctrl.EntryID, timestamp); err != nil {
			return nil, err
		}

		return FinishEvent{EntryID: ctrl.EntryID, Timestamp: timestamp}, nil

	case record.ControlSetMetadata:
		if _, err := r.setMetadata(ctrl.EntryID, ctrl.Metadata); err != nil {
			return nil, err
		}

		return MetadataEvent{EntryID: ctrl.EntryID, Metadata: ctrl.Metadata, Timestamp: timestamp}, nil

	default:
		// record.ParseControl never produces other kinds.
		return nil, fmt.Errorf("%w: discriminant %d", errs.ErrUnknownControlType, ctrl.Kind)
	}
}
