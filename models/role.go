package models

type Role string

const (
	RoleStandard   Role = "standard"
	RolePrivileged Role = "privileged"
)

// Capability 端點所需的權限，角色以明確的權限集合表示而非數值大小比較
type Capability string

const (
	CapabilityCartWrite    Capability = "cart:write"
	CapabilityCartRead     Capability = "cart:read"
	CapabilityProfileWrite Capability = "profile:write"
)

var roleCapabilities = map[Role][]Capability{
	RoleStandard: {
		CapabilityCartWrite,
		CapabilityProfileWrite,
	},
	RolePrivileged: {
		CapabilityCartWrite,
		CapabilityProfileWrite,
		CapabilityCartRead,
	},
}

// Can 未知角色沒有任何權限
func (r Role) Can(capability Capability) bool {
	for _, c := range roleCapabilities[r] {
		if c == capability {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}
