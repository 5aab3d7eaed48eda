// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category groups recipes. Names are unique across the catalogue.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
