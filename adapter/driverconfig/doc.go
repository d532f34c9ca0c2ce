// Package driverconfig provides a JSONC-backed implementation of
// load.DriverTypeRegistry (spec §6 "Type registry (optional, for phase
// 8)"): a mapping from a driver-specific `type` property value to its
// storage-kind classification, consulted by phase 7 when a field's type is
// something other than one of the reserved built-in names.
//
// Driver configuration is plain JSONC, so comments and trailing commas are
// tolerated in operator-maintained config files:
//
//	{
//	  // identifiers rendered as a fixed-size opaque blob
//	  "uuid": "fixed_size",
//	  "decimal": "requires_precision",
//	  "varchar": "requires_size",
//	}
package driverconfig
