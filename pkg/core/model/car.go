// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON
// serialization) since adding more tags does not complicate definition
// of a struct, but can prevent unnecessary structs duplication.
package model

// Car models a car which is kept in memory for the process lifetime.
// In contrast to User and Directory, a Car is never persisted in a
// database and so it has no identifier. Cars may be created and listed,
// but they may not be updated or deleted.
type Car struct {
	Name        string `json:"name"`        // name of the car
	Color       string `json:"color"`       // color of the car
	MilesDriven int    `json:"milesDriven"` // odometer value in miles
}
