package attest

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/pflow-xyz/go-synth/petri"
)

// Attestor holds a compiled sequence circuit with its proving and
// verifying keys. One Attestor serves one net at one step budget;
// compile is expensive, proving is per-sequence.
type Attestor struct {
	circuit *SequenceCircuit
	curve   ecc.ID
	cs      constraint.ConstraintSystem
	pk      groth16.ProvingKey
	vk      groth16.VerifyingKey
}

// Proof is a generated attestation: the Groth16 proof plus the public
// witness a verifier checks it against.
type Proof struct {
	Proof  groth16.Proof
	Public witness.Witness
	Final  petri.Marking
}

// Compile builds the circuit for the net, compiles it to R1CS on BN254,
// and runs the trusted setup.
func Compile(net *petri.PetriNet, steps int) (*Attestor, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("step budget must be positive, got %d", steps)
	}

	a := &Attestor{
		circuit: NewSequenceCircuit(net, steps),
		curve:   ecc.BN254,
	}

	cs, err := frontend.Compile(a.curve.ScalarField(), r1cs.NewBuilder, a.circuit)
	if err != nil {
		return nil, fmt.Errorf("circuit compilation failed: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	a.cs = cs
	a.pk = pk
	a.vk = vk
	return a, nil
}

// Constraints reports the compiled constraint count.
func (a *Attestor) Constraints() int {
	return a.cs.GetNbConstraints()
}

// Prove attests that firing path from the initial marking is a valid
// replay. The final marking is computed from the replay and exposed as a
// public input along with the initial marking; the path stays secret.
func (a *Attestor) Prove(initial petri.Marking, path []string) (*Proof, error) {
	assignment, final, err := a.circuit.Assignment(initial, path)
	if err != nil {
		return nil, fmt.Errorf("assignment failed: %w", err)
	}

	w, err := frontend.NewWitness(assignment, a.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness creation failed: %w", err)
	}
	proof, err := groth16.Prove(a.cs, a.pk, w)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("public witness extraction failed: %w", err)
	}

	return &Proof{Proof: proof, Public: public, Final: final}, nil
}

// Verify checks an attestation against the verifying key.
func (a *Attestor) Verify(p *Proof) error {
	return groth16.Verify(p.Proof, a.vk, p.Public)
}
