// Package kernel provides core domain primitives shared by every aggregate of the
// waste pickup coordination domain. It contains the value objects that do not belong
// to any single aggregate:
//
//   - UUID: validated identifier wrapping github.com/google/uuid
//   - Actor: the authenticated principal (user id, global role, superuser flag)
//     passed explicitly into every core operation
//   - Role: the global role enumeration (customer, property, transport, recycling, admin)
//   - ConstructorGuard: defensive pattern ensuring value objects are built through
//     their constructors
//
// All types in this package are immutable and safe for concurrent use.
package kernel
