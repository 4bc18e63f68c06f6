// Package schedule implements the capacity-aware operation scheduler. It
// places manufacturing operations onto calendar days against finite
// per-cell daily capacity, splitting across days when an operation does not
// fit in one, and threads job operations sequentially so an operation never
// starts before its predecessor's allocation ends.
package schedule
