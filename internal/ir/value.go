package ir

// value is the record shared by every IR entity: a name, its own
// handle, whether it produces a usable result, its ordered operand
// list, and the set of entities currently using it as an operand.
//
// users is a set, not a list: an entity that lists v as an operand
// twice still appears in v.users only once (invariant I1).
type value struct {
	name  string
	id    ValueHandle
	isDef bool
	ops   []ValueHandle
	users map[ValueHandle]struct{}
}

func newValue(name string, id ValueHandle, isDef bool, ops []ValueHandle) value {
	v := value{
		name:  name,
		id:    id,
		isDef: isDef,
		ops:   append([]ValueHandle(nil), ops...),
		users: make(map[ValueHandle]struct{}),
	}
	return v
}

func (v *value) addUser(u ValueHandle) {
	v.users[u] = struct{}{}
}

func (v *value) delUser(u ValueHandle) {
	delete(v.users, u)
}

func (v *value) hasOp(target ValueHandle) bool {
	for _, op := range v.ops {
		if op == target {
			return true
		}
	}
	return false
}

// sortedUsers returns v's users in a deterministic order for
// iteration by callers outside the arena (printers, tests); the set
// itself carries no ordering.
func (v *value) sortedUsers() []ValueHandle {
	out := make([]ValueHandle, 0, len(v.users))
	for u := range v.users {
		out = append(out, u)
	}
	sortHandles(out)
	return out
}
