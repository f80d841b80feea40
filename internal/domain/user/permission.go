package user

// Module names permission-gated areas of the API.
type Module string

const (
	ModuleEmployees  Module = "employees"
	ModuleLeave      Module = "leave"
	ModuleAttendance Module = "attendance"
	ModuleMasters    Module = "masters"
	ModuleSettings   Module = "settings"
	ModuleUsers      Module = "users"
)

// Actions grants per-module capabilities. A request resolves its role into a
// Capabilities value once; handlers never re-derive per-table booleans.
type Actions struct {
	View   bool
	Add    bool
	Edit   bool
	Delete bool
	// Approve applies to workflow modules (leave)
	Approve bool
}

// Capabilities is the capability set for one role.
type Capabilities map[Module]Actions

var rolePermissions = map[Role]Capabilities{
	RoleAdmin: {
		ModuleEmployees:  {View: true, Add: true, Edit: true, Delete: true},
		ModuleLeave:      {View: true, Add: true, Edit: true, Delete: true, Approve: true},
		ModuleAttendance: {View: true, Add: true, Edit: true, Delete: true},
		ModuleMasters:    {View: true, Add: true, Edit: true, Delete: true},
		ModuleSettings:   {View: true, Edit: true},
		ModuleUsers:      {View: true, Add: true, Edit: true, Delete: true},
	},
	RoleHRManager: {
		ModuleEmployees:  {View: true, Add: true, Edit: true},
		ModuleLeave:      {View: true, Add: true, Edit: true, Approve: true},
		ModuleAttendance: {View: true, Add: true, Edit: true},
		ModuleMasters:    {View: true, Add: true, Edit: true},
		ModuleSettings:   {View: true},
	},
	RoleEmployee: {
		ModuleLeave:      {View: true, Add: true},
		ModuleAttendance: {View: true, Add: true},
	},
}

// CapabilitiesFor resolves the capability set for a role. Unknown roles get
// an empty set.
func CapabilitiesFor(role Role) Capabilities {
	caps, ok := rolePermissions[role]
	if !ok {
		return Capabilities{}
	}
	return caps
}

// Can reports whether the capability set allows the action on the module.
func (c Capabilities) Can(module Module, check func(Actions) bool) bool {
	actions, ok := c[module]
	if !ok {
		return false
	}
	return check(actions)
}

// Convenience predicates for middleware.
func CanView(a Actions) bool    { return a.View }
func CanAdd(a Actions) bool     { return a.Add }
func CanEdit(a Actions) bool    { return a.Edit }
func CanDelete(a Actions) bool  { return a.Delete }
func CanApprove(a Actions) bool { return a.Approve }
