package network

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/mfeldt/gridviz/pkg/errors"
)

// BusResult holds solved quantities for one bus. Power follows the
// consumer convention: positive P is consumption, so the slack bus shows a
// negative injection.
type BusResult struct {
	VMPU     float64 `json:"vm_pu" bson:"vm_pu"`
	VADegree float64 `json:"va_degree" bson:"va_degree"`
	PMW      float64 `json:"p_mw" bson:"p_mw"`
	QMVar    float64 `json:"q_mvar" bson:"q_mvar"`
}

// LineResult holds solved quantities for one line. Flows are reported at
// the from side; losses are the difference between the two ends.
type LineResult struct {
	PFromMW        float64 `json:"p_from_mw" bson:"p_from_mw"`
	QFromMVar      float64 `json:"q_from_mvar" bson:"q_from_mvar"`
	PToMW          float64 `json:"p_to_mw" bson:"p_to_mw"`
	QToMVar        float64 `json:"q_to_mvar" bson:"q_to_mvar"`
	PlMW           float64 `json:"pl_mw" bson:"pl_mw"`
	QlMVar         float64 `json:"ql_mvar" bson:"ql_mvar"`
	LoadingPercent float64 `json:"loading_percent" bson:"loading_percent"`
}

// TrafoResult holds solved quantities for one transformer.
type TrafoResult struct {
	PHVMW          float64 `json:"p_hv_mw" bson:"p_hv_mw"`
	QHVMVar        float64 `json:"q_hv_mvar" bson:"q_hv_mvar"`
	PlMW           float64 `json:"pl_mw" bson:"pl_mw"`
	QlMVar         float64 `json:"ql_mvar" bson:"ql_mvar"`
	LoadingPercent float64 `json:"loading_percent" bson:"loading_percent"`
}

// GenResult holds solved output for one generator.
type GenResult struct {
	PMW   float64 `json:"p_mw" bson:"p_mw"`
	QMVar float64 `json:"q_mvar" bson:"q_mvar"`
}

// ExtGridResult holds the solved injection of one external-grid connection.
type ExtGridResult struct {
	PMW   float64 `json:"p_mw" bson:"p_mw"`
	QMVar float64 `json:"q_mvar" bson:"q_mvar"`
}

// Results holds the solved tables of a power-flow run. Each slice is
// parallel to the corresponding Network table.
type Results struct {
	Converged  bool            `json:"converged" bson:"converged"`
	Iterations int             `json:"iterations,omitempty" bson:"iterations,omitempty"`
	Buses      []BusResult     `json:"buses" bson:"buses"`
	Lines      []LineResult    `json:"lines" bson:"lines"`
	Trafos     []TrafoResult   `json:"trafos" bson:"trafos"`
	Gens       []GenResult     `json:"gens" bson:"gens"`
	ExtGrids   []ExtGridResult `json:"ext_grids" bson:"ext_grids"`
}

// Matches reports whether the result tables are shaped for the given
// network (same row counts in every parallel table).
func (r *Results) Matches(n *Network) bool {
	return len(r.Buses) == len(n.Buses) &&
		len(r.Lines) == len(n.Lines) &&
		len(r.Trafos) == len(n.Trafos) &&
		len(r.Gens) == len(n.Gens) &&
		len(r.ExtGrids) == len(n.ExtGrids)
}

// MarshalResults encodes results as indented JSON.
func MarshalResults(r *Results) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ReadResults decodes results from r.
func ReadResults(rd io.Reader) (*Results, error) {
	var res Results
	if err := json.NewDecoder(rd).Decode(&res); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode results")
	}
	return &res, nil
}

// ReadResultsFile loads solved results from a JSON file.
func ReadResultsFile(path string) (*Results, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return ReadResults(f)
}
