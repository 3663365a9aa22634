// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package artifact saves and loads the arrays produced by simulation trials as
NumPy .npy files, using the file naming scheme of the analysis scripts that
consume them:

	<dir>/<name>-MEG.npy    MEG trace [T+1]
	<dir>/<name>-Ex.npy     excitatory phases [units, T+1]
	<dir>/<name>-Inh.npy    inhibitory phases (EI)
	<dir>/<name>-Bask.npy   FS basket phases (FSLTS)
	<dir>/<name>-Chand.npy  SOM phases (FSLTS)
	<dir>/<name>-PSD.npy    PSD of the MEG trace
	<dir>/freqs.npy         PSD bin frequencies (cycles / msec), shared across trials

Trial names embed the drive strength, drive frequency and seed, see TrialName.
*/
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/emer/etable/v2/etensor"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// ErrMissingArtifact is returned when an array, seed list or manifest is missing,
// unreadable or malformed.
var ErrMissingArtifact = errors.New("missing artifact")

// Standard file suffixes
const (
	MEGSuffix = "MEG"
	PSDSuffix = "PSD"
	FreqsName = "freqs"
)

// PopSuffix maps population names to the file suffix used for their phases,
// for names that differ.
var PopSuffix = map[string]string{
	"FS":  "Bask",
	"SOM": "Chand",
}

// SuffixForPop returns the file suffix for the phases of the named population
func SuffixForPop(pop string) string {
	if sf, ok := PopSuffix[pop]; ok {
		return sf
	}
	return pop
}

// PyFloat formats v the way Python's str(float) does: shortest round-trip
// digits, always with a decimal point or exponent (40 -> "40.0").
func PyFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	av := math.Abs(v)
	if av != 0 && (av < 1e-4 || av >= 1e16) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go writes e-05 / e+16, as does Python
		return s
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// TrialName returns the standard name of a batch trial
func TrialName(base string, driveG, freq float64, seed int64) string {
	return base + "drive_strength_" + PyFloat(driveG) + "_drive_frequency_" + PyFloat(freq) + "_seed_" + strconv.FormatInt(seed, 10)
}

// AvgName returns the standard name of the across-seed average for one drive frequency
func AvgName(base string, freq float64) string {
	return base + "_drive_frequency_" + PyFloat(freq)
}

// Store reads and writes artifacts in one directory
type Store struct {
	Dir string `desc:"directory holding all the files"`
}

// NewStore returns a store for dir, creating it if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("artifact: failed to create directory %s: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

// Path returns the file path for name and suffix
func (st *Store) Path(name, suffix string) string {
	if suffix == "" {
		return filepath.Join(st.Dir, name+".npy")
	}
	return filepath.Join(st.Dir, name+"-"+suffix+".npy")
}

// Exists returns true if the artifact file is present
func (st *Store) Exists(name, suffix string) bool {
	_, err := os.Stat(st.Path(name, suffix))
	return err == nil
}

func writeNpy(path string, val any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifact: failed to create %s: %w", path, err)
	}
	if err := npyio.Write(f, val); err != nil {
		f.Close()
		return fmt.Errorf("artifact: failed to write %s: %w", path, err)
	}
	return f.Close()
}

func readNpy(path string, ptr any) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingArtifact, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrMissingArtifact, path, err)
	}
	defer f.Close()
	if err := npyio.Read(f, ptr); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMissingArtifact, path, err)
	}
	return nil
}

// SaveTrace saves a 1D array
func (st *Store) SaveTrace(name, suffix string, x []float64) error {
	return writeNpy(st.Path(name, suffix), x)
}

// LoadTrace loads a 1D array
func (st *Store) LoadTrace(name, suffix string) ([]float64, error) {
	var x []float64
	if err := readNpy(st.Path(name, suffix), &x); err != nil {
		return nil, err
	}
	return x, nil
}

// LoadTraceFile loads a 1D array from a file path, as recorded in a catalog
func LoadTraceFile(path string) ([]float64, error) {
	var x []float64
	if err := readNpy(path, &x); err != nil {
		return nil, err
	}
	return x, nil
}

// SaveMatrix saves a 2D [rows, cols] tensor, e.g. phases [units, T+1]
func (st *Store) SaveMatrix(name, suffix string, tsr *etensor.Float64) error {
	if tsr.NumDims() != 2 {
		return fmt.Errorf("artifact: %s-%s must be 2D, has shape: %v", name, suffix, tsr.Shapes())
	}
	r, c := tsr.Dim(0), tsr.Dim(1)
	if r == 0 || c == 0 {
		return fmt.Errorf("artifact: %s-%s is empty", name, suffix)
	}
	return writeNpy(st.Path(name, suffix), mat.NewDense(r, c, tsr.Values))
}

// LoadMatrix loads a 2D array into a [rows, cols] tensor
func (st *Store) LoadMatrix(name, suffix string) (*etensor.Float64, error) {
	var m mat.Dense
	if err := readNpy(st.Path(name, suffix), &m); err != nil {
		return nil, err
	}
	r, c := m.Dims()
	tsr := etensor.NewFloat64([]int{r, c}, nil, []string{"Unit", "Time"})
	for i := 0; i < r; i++ {
		copy(tsr.Values[i*c:(i+1)*c], m.RawRowView(i))
	}
	return tsr, nil
}

// SaveFreqs saves the shared PSD bin frequencies
func (st *Store) SaveFreqs(freqs []float64) error {
	return st.SaveTrace(FreqsName, "", freqs)
}

// LoadFreqs loads the shared PSD bin frequencies
func (st *Store) LoadFreqs() ([]float64, error) {
	return st.LoadTrace(FreqsName, "")
}

//////////////////////////////////////////////////////////////////////////////////////
//  Seeds

// SaveSeeds writes a seed list as an int64 .npy array
func SaveSeeds(path string, seeds []int64) error {
	return writeNpy(path, seeds)
}

// LoadSeeds reads a seed list in file order
func LoadSeeds(path string) ([]int64, error) {
	var seeds []int64
	if err := readNpy(path, &seeds); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: %s: empty seed list", ErrMissingArtifact, path)
	}
	return seeds, nil
}
