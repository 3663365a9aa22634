// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theta

import (
	"github.com/goki/ki/kit"
)

//////////////////////////////////////////////////////////////////////
// Enums

// PopTypes are the roles a population plays in the network
type PopTypes int32

//go:generate stringer -type=PopTypes

var KiT_PopTypes = kit.Enums.AddEnum(PopTypesN, false, nil)

func (ev PopTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PopTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ExcitPop is a population of excitatory (pyramidal) theta neurons,
	// whose recurrent currents make up the MEG signal.
	ExcitPop PopTypes = iota

	// InhibPop is a population of inhibitory interneurons (generic,
	// fast-spiking basket / PV+, or low threshold spiking SOM+).
	InhibPop

	// DrivePop is a single-unit population with constant bias and no inputs,
	// which oscillates at the drive frequency and entrains its targets.
	DrivePop

	PopTypesN
)

// PrjnTypes are the signs of projections
type PrjnTypes int32

//go:generate stringer -type=PrjnTypes

var KiT_PrjnTypes = kit.Enums.AddEnum(PrjnTypesN, false, nil)

func (ev PrjnTypes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PrjnTypes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// ExcitPrjn adds G times the summed gating to the receiving units' input
	ExcitPrjn PrjnTypes = iota

	// InhibPrjn subtracts G times the summed gating from the receiving units' input
	InhibPrjn

	PrjnTypesN
)

// Variants are the fixed network graphs that can be built from Params
type Variants int32

//go:generate stringer -type=Variants

var KiT_Variants = kit.Enums.AddEnum(VariantsN, false, nil)

func (ev Variants) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Variants) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// MarshalText is used by TOML and YAML config files
func (ev Variants) MarshalText() ([]byte, error) { return []byte(ev.String()), nil }

// UnmarshalText is used by TOML and YAML config files
func (ev *Variants) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

const (
	// EI has excitatory (Ex) and one generic inhibitory (Inh) population,
	// with the drive projecting to the excitatory cells only.
	EI Variants = iota

	// FSLTS has excitatory (Ex), fast-spiking basket (FS, PV+) and
	// low threshold spiking (SOM) populations.  The drive projects to Ex and FS.
	// SOM has no self projection and receives no drive.
	FSLTS

	VariantsN
)
