package remoteshare

type EntryKind int

const (
	EntryKindUnknown EntryKind = iota
	// EntryKindPlain is a record that is neither a share nor rooted in one
	EntryKindPlain
	EntryKindShare
	// EntryKindShareReference is a record that points to the share rooted at it
	EntryKindShareReference
)

func (k EntryKind) String() string {
	switch k {
	case EntryKindPlain:
		return "plain"
	case EntryKindShare:
		return "share"
	case EntryKindShareReference:
		return "shareReference"
	}
	return "unknown"
}

// Entry is anything the remote store holds: a plain record, a share, or a record referencing a share.
// Record is set for plain and reference kinds, Share for the share kind.
type Entry struct {
	Kind   EntryKind
	Record *Record
	Share  *Share
}

func PlainEntry(r *Record) Entry {
	return Entry{Kind: EntryKindPlain, Record: r}
}

// RecordEntry picks the plain or reference kind depending on r.ShareRef
func RecordEntry(r *Record) Entry {
	if r.ShareRef != "" {
		return Entry{Kind: EntryKindShareReference, Record: r}
	}
	return PlainEntry(r)
}

func ShareEntry(s *Share) Entry {
	return Entry{Kind: EntryKindShare, Share: s}
}

// Id returns the id of the wrapped record or share
func (e Entry) Id() string {
	switch e.Kind {
	case EntryKindShare:
		if e.Share != nil {
			return e.Share.Id
		}
	case EntryKindPlain, EntryKindShareReference:
		if e.Record != nil {
			return e.Record.Id
		}
	}
	return ""
}

func (e Entry) Copy() Entry {
	return Entry{Kind: e.Kind, Record: e.Record.Copy(), Share: e.Share.Copy()}
}
