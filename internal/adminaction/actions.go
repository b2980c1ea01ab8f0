package adminaction

type ActionType string

// Only guard-bypassing actions land in admin_actions; routine admin writes
// (driver assignment, payment settlement) go to audit_logs instead.
const ActionOverrideStatus ActionType = "OVERRIDE_STATUS"
