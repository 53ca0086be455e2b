package domain

// Storage keys shared by every component. These are a wire-level contract:
// values written under them must stay readable across releases.
const (
	// AppPrefix namespaces every container key in the shared store.
	AppPrefix = "videohive"

	// RoleKey holds the current marketplace role as a plain string.
	RoleKey = "vh_role"

	// GuestIDKey holds the anonymous identity for this profile.
	GuestIDKey = AppPrefix + "-guest-id"

	// RoleChangeEvent names the role-change notification on both
	// delivery channels (in-process dispatch and the durable feed).
	RoleChangeEvent = "vh_role_change"
)

// ContainerKind distinguishes the two scoped state containers.
type ContainerKind string

const (
	KindCart     ContainerKind = "cart"
	KindWishlist ContainerKind = "wishlist"
)

// Partition selects which copy of a container's state is addressed. The
// value is the key suffix: empty for the shared default partition, "user"
// for the authenticated partition, or a guest id.
type Partition string

const (
	PartitionDefault Partition = ""
	PartitionUser    Partition = "user"
)

// GuestPartition returns the partition bound to an anonymous identity.
// An empty guest id resolves to the default partition, so a missing
// identity degrades to shared state rather than a broken key.
func GuestPartition(guestID string) Partition {
	return Partition(guestID)
}

// IsGuest reports whether the partition belongs to an anonymous identity.
func (p Partition) IsGuest() bool {
	return p != PartitionDefault && p != PartitionUser
}

func (p Partition) String() string {
	switch p {
	case PartitionDefault:
		return "default"
	case PartitionUser:
		return "user"
	default:
		return "guest:" + string(p)
	}
}

// StorageKey derives the persisted key for a container partition:
// "videohive-<kind>" for the default partition, "videohive-<kind>-<suffix>"
// otherwise.
func StorageKey(kind ContainerKind, p Partition) string {
	key := AppPrefix + "-" + string(kind)
	if p == PartitionDefault {
		return key
	}
	return key + "-" + string(p)
}

// ActivePartition resolves which partition a container binds to for the
// given role. Any authenticated role shares the single user partition.
func ActivePartition(role Role, guestID string) Partition {
	if role.IsAuthenticated() {
		return PartitionUser
	}
	return GuestPartition(guestID)
}
