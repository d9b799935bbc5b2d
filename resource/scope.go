package resource

import (
	"fmt"
)

type RealmID uint32

// Scope namespaces the names a resource creates, so that several instances
// can share one store.
type Scope interface {
	ID() RealmID
	PrefixedName(string) string
}

var _ Scope = InstanceScope{}

type InstanceScope struct {
	instanceID RealmID
}

func NewInstanceScope(instanceID RealmID) InstanceScope {
	return InstanceScope{
		instanceID: instanceID,
	}
}

func (i InstanceScope) ID() RealmID {
	return i.instanceID
}

func (i InstanceScope) PrefixedName(name string) string {
	return fmt.Sprintf("i_%d_%s", i.instanceID, name)
}
