package vm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	"github.com/minio/sha256-simd"
	"github.com/multiformats/go-multibase"

	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/builtin"
	"github.com/jaceteam/Jace-Token-Lock-Team-v1/actors/runtime/exitcode"
)

//
// Test Vector generation utilities
//

const (
	conformanceEnv = "VESTING_CONFORMANCE"
	determinismEnv = "VESTING_DETERMINISM"
)

type vectorGen struct {
	conformanceDir string
	determinismDir string
	vector         testVector
}

func newVectorGen() *vectorGen {
	// check environment variables to determine if generation is on
	return &vectorGen{
		conformanceDir: os.Getenv(conformanceEnv),
		determinismDir: os.Getenv(determinismEnv),
	}
}

func (g *vectorGen) determinism() bool {
	return g.determinismDir != ""
}

func (g *vectorGen) conformance() bool {
	return g.conformanceDir != ""
}

func (g *vectorGen) enabled() bool {
	return g.determinism() || g.conformance()
}

// Records the pre-application conditions. The caller holds the VM lock.
func (g *vectorGen) before(v *VM) error {
	if !g.enabled() {
		return nil
	}
	eventsRoot, err := v.events.Root()
	if err != nil {
		return err
	}
	g.vector = testVector{
		Class: "message",
		Pre: preconditions{
			Epoch:       v.currentEpoch,
			NetworkName: v.networkName,
			StateTree:   stateTree{RootCID: v.stateRoot},
			EventLog:    stateTree{RootCID: eventsRoot},
		},
	}
	return nil
}

// Records the message and its outcome and writes the vector. The caller holds the VM lock.
func (g *vectorGen) after(v *VM, from, to address.Address, method abi.MethodNum, params cbor.Marshaler, callSeq uint64,
	result MessageResult, name string) error {
	if !g.enabled() {
		return nil
	}
	paramBytes, err := serialize(params)
	if err != nil {
		return err
	}
	retBytes, err := serialize(result.Ret)
	if err != nil {
		return err
	}
	eventsRoot, err := v.events.Root()
	if err != nil {
		return err
	}

	g.vector.Message = message{
		From:       from.String(),
		To:         to.String(),
		Method:     method,
		CallSeqNum: callSeq,
		Params:     encodeBase64(paramBytes),
	}
	g.vector.Post = postconditions{
		StateTree: stateTree{RootCID: v.stateRoot},
		EventLog:  stateTree{RootCID: eventsRoot},
		Receipt: receipt{
			ExitCode: result.Code,
			Return:   encodeBase64(retBytes),
		},
	}

	var car bytes.Buffer
	if err := writeCAR(v.bs, &car, g.vector.Pre.StateTree.RootCID, g.vector.Pre.EventLog.RootCID,
		g.vector.Post.StateTree.RootCID, g.vector.Post.EventLog.RootCID); err != nil {
		return err
	}
	g.vector.CAR = encodeBase64(car.Bytes())

	vectorBytes, err := json.MarshalIndent(&g.vector, "", "  ")
	if err != nil {
		return err
	}

	fromID, _ := v.normalizeAddress(from)
	toID, found := v.normalizeAddress(to)
	actName := "unknown"
	if found {
		if act, found, err := v.actors.GetActor(toID); err == nil && found {
			full := builtin.ActorNameByCode(act.Code)
			actName = strings.Trim(full[strings.LastIndex(full, "/")+1:], "<>")
		}
	}

	h := sha256.Sum256(vectorBytes)
	fname := fmt.Sprintf("%x-%s-%s-%s-%d.json", h[:], fromID, toID, actName, method)

	// Write conformance test-vectors
	if g.conformance() {
		if err := writeVector(name, fname, vectorBytes, g.conformanceDir); err != nil {
			return err
		}
	}

	// Write determinism test-vectors
	if g.determinism() {
		if err := writeVector(name, fname, vectorBytes, g.determinismDir); err != nil {
			return err
		}
	}
	return nil
}

func serialize(obj cbor.Marshaler) ([]byte, error) {
	if obj == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := obj.MarshalCBOR(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeBase64(b []byte) string {
	s, err := multibase.Encode(multibase.Base64, b)
	if err != nil {
		panic(err) // base64 is always a supported encoding
	}
	return s
}

// rootDir is the top level directory containing all vectors
// dname is the subdirectory path containing the file to write
// fname is the name of this file
// vectorBytes is the data to write to file
func writeVector(dname, fname string, vectorBytes []byte, rootDir string) error {
	dir := filepath.Join(rootDir, dname)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fname), vectorBytes, 0644)
}

//
// Vector schema
//

type testVector struct {
	Class   string         `json:"class"`
	CAR     string         `json:"car"`
	Pre     preconditions  `json:"preconditions"`
	Message message        `json:"apply_message"`
	Post    postconditions `json:"postconditions"`
}

type stateTree struct {
	RootCID cid.Cid `json:"root_cid"`
}

type preconditions struct {
	Epoch       abi.ChainEpoch `json:"epoch"`
	NetworkName string         `json:"network_name"`
	StateTree   stateTree      `json:"state_tree"`
	EventLog    stateTree      `json:"event_log"`
}

type message struct {
	From       string        `json:"from"`
	To         string        `json:"to"`
	Method     abi.MethodNum `json:"method"`
	CallSeqNum uint64        `json:"call_seq_num"`
	Params     string        `json:"params"`
}

type receipt struct {
	ExitCode exitcode.ExitCode `json:"exit_code"`
	Return   string            `json:"return"`
}

type postconditions struct {
	StateTree stateTree `json:"state_tree"`
	EventLog  stateTree `json:"event_log"`
	Receipt   receipt   `json:"receipt"`
}
