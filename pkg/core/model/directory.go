// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Directory models a persisted phone directory entry, having a label
// and a phone number. The ID is assigned by the persistence layer.
//
// The phone number is only given at creation time. Neither a partial
// update nor a full replacement may change it afterwards.
type Directory struct {
	ID          uint64 `json:"id"`          // database assigned identifier
	Label       string `json:"label"`       // label of the phone number
	PhoneNumber int64  `json:"phoneNumber"` // immutable after creation
}

// DirectoryPatch lists the updateable keys of a Directory entry.
// Only the label is updateable.
type DirectoryPatch struct {
	Label *string `json:"label"`
}

// Apply updates fields of the `d` entry which are present in the `p`
// patch and reports whether `d` was changed.
func (p DirectoryPatch) Apply(d *Directory) (changed bool) {
	if p.Label != nil && *p.Label != d.Label {
		d.Label = *p.Label
		changed = true
	}
	return
}

// Replace copies the mutable fields of `src` into the `d` entry. The
// identifier and the phone number of `d` are kept intact, even if
// `src` carries another phone number.
func (d *Directory) Replace(src Directory) {
	d.Label = src.Label
}
