package repository

import "gorm.io/gorm/clause"

// lockForUpdate serializes writers that maintain denormalized array columns
// on the locked row.
var lockForUpdate = clause.Locking{Strength: "UPDATE"}
