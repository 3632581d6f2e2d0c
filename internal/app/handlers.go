package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/qivm/backend"
	"github.com/kegliz/qivm/bytecode"
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/pass"
	"github.com/kegliz/qivm/program"
	"github.com/kegliz/qivm/qubit"

	// Import backends to register them.
	_ "github.com/kegliz/qivm/backend/itsu"
	_ "github.com/kegliz/qivm/backend/qsim"
)

// OpRequest is one step of a JSON-described program, generalizing the
// teacher's flat gate list (type/qubits/step) into the operations
// program.Builder actually exposes: a material gate application, or a
// control/decontrol region toggle.
type OpRequest struct {
	Kind     string    `json:"kind"` // "gate", "control", "decontrol"
	Gate     string    `json:"gate,omitempty"`
	Params   []float64 `json:"params,omitempty"`
	Targets  []int     `json:"targets"`
	Negative bool      `json:"negative,omitempty"` // control/decontrol only: zero-controls
}

// CompileRequest is the body for POST /api/compile.
type CompileRequest struct {
	Qubits  int         `json:"qubits"`
	Ops     []OpRequest `json:"ops"`
	Measure []int       `json:"measure"`
	Backend string      `json:"backend"`
}

// CompileResponse is the body returned from POST /api/compile.
type CompileResponse struct {
	ByteCode    bytecode.ByteCode `json:"bytecode"`
	ProgramID   string            `json:"program_id"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

// ExecuteRequest is the body for POST /api/execute. Exactly one of
// ByteCode or ProgramID must be set; ProgramID looks up bytecode a
// previous /api/compile call stored.
type ExecuteRequest struct {
	ByteCode  bytecode.ByteCode `json:"bytecode,omitempty"`
	ProgramID string            `json:"program_id,omitempty"`
	Backend   string            `json:"backend"`
	Shots     int               `json:"shots"`
}

var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// RootHandler is the handler for the / endpoint.
func (a *appServer) RootHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving root endpoint")
	c.JSON(http.StatusOK, gin.H{"name": "qivm", "version": a.version})
}

// HealthHandler is the handler for the /health endpoint.
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// CompileCircuit is the handler for the /api/compile endpoint: builds
// a circuit from the JSON op list, runs the pass pipeline against the
// requested backend's gate alphabet, and encodes the result to
// bytecode, stashing it in the program store under a fresh id.
func (a *appServer) CompileCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving compile endpoint")

	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}
	if req.Qubits <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "qubits must be positive"})
		return
	}
	if req.Backend == "" {
		req.Backend = "qsim"
	}

	dev, err := backend.Create(req.Backend)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown backend %q", req.Backend)})
		return
	}

	circ, measureTarget, err := BuildCircuitFromRequest(&req)
	if err != nil {
		l.Error().Err(err).Msg("building circuit failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to build circuit: " + err.Error()})
		return
	}

	lowered, err := pass.Run(circ, pass.Default(dev))
	if err != nil {
		l.Error().Err(err).Msg("pass pipeline failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "lowering failed: " + err.Error()})
		return
	}

	ins, err := bytecode.FromCircuit(lowered, uint32(req.Qubits), measureTarget)
	if err != nil {
		l.Error().Err(err).Msg("bytecode encoding failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "encoding failed: " + err.Error()})
		return
	}

	code := bytecode.Encode(ins)
	id := a.store.Save(code)

	c.JSON(http.StatusOK, CompileResponse{ByteCode: code, ProgramID: id})
}

// ExecuteCircuit is the handler for the /api/execute endpoint.
func (a *appServer) ExecuteCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving execute endpoint")

	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	code := req.ByteCode
	if len(code) == 0 {
		if req.ProgramID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "either bytecode or program_id is required"})
			return
		}
		stored, ok := a.store.Get(req.ProgramID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown program_id"})
			return
		}
		code = stored
	}

	if req.Shots <= 0 || req.Shots > 100000 {
		req.Shots = 1000
	}
	if req.Backend == "" {
		req.Backend = "qsim"
	}

	dev, err := backend.Create(req.Backend)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown backend %q", req.Backend)})
		return
	}

	result, err := dev.Exec(code, req.Shots)
	if err != nil {
		l.Error().Err(err).Str("backend", req.Backend).Msg("execution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "execution failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// BuildCircuitFromRequest turns a CompileRequest into a circuit.Circuit
// plus the measure accessor, via program.Builder's fluent API. Shared
// between the HTTP compile endpoint and cmd/qivmc's build subcommand,
// since both drive the same op-list-to-circuit step.
func BuildCircuitFromRequest(req *CompileRequest) (circuit.Circuit, qubit.Accessor, error) {
	b := program.NewBuilder()
	_, b = b.Alloc(req.Qubits)

	for _, op := range req.Ops {
		targets := qubit.FromSlice(intsToAddrs(op.Targets))
		switch op.Kind {
		case "gate":
			g, err := gateByName(op.Gate, op.Params)
			if err != nil {
				return circuit.Circuit{}, qubit.Accessor{}, err
			}
			b = b.Gate(g, targets)
		case "control":
			if op.Negative {
				b = b.ControlZero(targets)
			} else {
				b = b.Control(targets)
			}
		case "decontrol":
			b = b.Decontrol(targets)
		default:
			return circuit.Circuit{}, qubit.Accessor{}, fmt.Errorf("unknown op kind %q", op.Kind)
		}
	}

	if len(req.Measure) > 0 {
		b = b.Measure(qubit.FromSlice(intsToAddrs(req.Measure)))
	}

	c, err := b.Build()
	if err != nil {
		return circuit.Circuit{}, qubit.Accessor{}, err
	}
	target, _ := b.Context().MeasureTarget()
	return c, target, nil
}

func intsToAddrs(xs []int) []qubit.Addr {
	out := make([]qubit.Addr, len(xs))
	for i, x := range xs {
		out[i] = qubit.Addr(x)
	}
	return out
}

// gateByName mirrors backend/qsim's gateFor switch but builds a
// gate.Gate directly from a JSON name/params pair instead of decoding
// a bytecode.Instruction.
func gateByName(name string, params []float64) (gate.Gate, error) {
	switch name {
	case "XPOW":
		return gate.XPow(arg(params, 0)), nil
	case "YPOW":
		return gate.YPow(arg(params, 0)), nil
	case "ZPOW":
		return gate.ZPow(arg(params, 0)), nil
	case "P":
		return gate.P(arg(params, 0)), nil
	case "RX":
		return gate.RX(arg(params, 0)), nil
	case "RY":
		return gate.RY(arg(params, 0)), nil
	case "RZ":
		return gate.RZ(arg(params, 0)), nil
	case "RN":
		return gate.RN(arg(params, 0), arg(params, 1), arg(params, 2), arg(params, 3)), nil
	case "U":
		return gate.U(arg(params, 0), arg(params, 1), arg(params, 2)), nil
	case "CP":
		return gate.CP(arg(params, 0)), nil
	case "CAN":
		return gate.Canonical(arg(params, 0), arg(params, 1), arg(params, 2)), nil
	default:
		return gate.Factory(name)
	}
}

func arg(params []float64, i int) float64 {
	if i < len(params) {
		return params[i]
	}
	return 0
}
