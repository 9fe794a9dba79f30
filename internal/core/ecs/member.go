package ecs

// MemberID names a declared member handle. Zero is never issued.
type MemberID uint32

// MemberInfo is the metadata kept for a declared member.
type MemberInfo struct {
	ID   MemberID
	Name string
}

// Process-wide member table. Declarations happen while systems are built, on
// the thread that owns the pipelines; registration is not synchronized and
// must not run concurrently. Once declared, a name keeps its id for the life
// of the process (or until ResetMembers).
var (
	memberIDs   = make(map[string]MemberID)
	memberInfos = []MemberInfo{{}}
)

// GetOrDeclareMember returns the id bound to name, declaring it on first use.
func GetOrDeclareMember(name string) MemberID {
	if id, ok := memberIDs[name]; ok {
		return id
	}
	id := MemberID(len(memberInfos))
	memberIDs[name] = id
	memberInfos = append(memberInfos, MemberInfo{ID: id, Name: name})
	return id
}

// LookupMember returns the metadata of a declared id.
func LookupMember(id MemberID) (MemberInfo, bool) {
	if id == 0 || int(id) >= len(memberInfos) {
		return MemberInfo{}, false
	}
	return memberInfos[id], true
}

// ResetMembers drops every declaration. Intended for tests.
func ResetMembers() {
	memberIDs = make(map[string]MemberID)
	memberInfos = []MemberInfo{{}}
}

// Field is a named, typed handle over the pool of T in one world.
type Field[T any] struct {
	member MemberID
	pool   *Pool[T]
}

// NewField binds name to the pool of T in w.
func NewField[T any](w *World, name string) Field[T] {
	return Field[T]{
		member: GetOrDeclareMember(name),
		pool:   GetPool[T](w),
	}
}

func (f Field[T]) Member() MemberID { return f.member }
func (f Field[T]) Pool() *Pool[T]   { return f.pool }

func (f Field[T]) Has(id EntityID) bool        { return f.pool.Has(id.Slot()) }
func (f Field[T]) Get(id EntityID) (*T, error) { return f.pool.Get(id.Slot()) }
func (f Field[T]) Set(id EntityID, v T) error  { return f.pool.Set(id.Slot(), v) }
func (f Field[T]) Add(id EntityID, v T) error  { return f.pool.Add(id.Slot(), v) }
func (f Field[T]) Del(id EntityID) error       { return f.pool.Del(id.Slot()) }
