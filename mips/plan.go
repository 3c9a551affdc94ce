// Package mips implements the MIPS-32 target backend of spec.md §4.H:
// frame layout, a local linear-scan-by-use-count register plan,
// instruction selection (including the fused idioms §4.H calls out), the
// loop-induction and array-update peepholes, and the runtime builtins.
//
// Grounded on the reference compiler's MipsPrinter.cpp — its RegisterPlan,
// FrameInfo, and BlockRegCache structs and its buildFrameInfo/planRegisters
// helper functions — translated to Go's value/use-list model rather than
// the reference's raw pointer-keyed unordered_maps.
package mips

import (
	"sort"

	"sysy/ir"
)

// calleeSaved is the fixed assignment pool of §4.H's register plan.
var calleeSaved = []string{"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7"}

// registerPlan maps a register-resident SSA value to its assigned
// callee-saved register. A value with no entry here lives in a spill slot
// (see frame.go).
type registerPlan struct {
	reg map[ir.Value]string
}

func (p *registerPlan) lookup(v ir.Value) (string, bool) {
	r, ok := p.reg[v]
	return r, ok
}

// planRegisters implements §4.H "Register plan": every defining
// instruction other than Alloca (which always lives in its fixed frame
// slot) is a candidate; candidates are sorted by use count descending and
// assigned to $s0..$s7 in order, stopping once either the pool or the
// use-count >= 2 threshold is exhausted.
func planRegisters(fn *ir.Function) *registerPlan {
	var candidates []*ir.Instruction
	for _, bb := range fn.Blocks {
		for _, inst := range bb.Insts {
			if inst.Op == ir.OpAlloca || inst.Name == "" {
				continue
			}
			candidates = append(candidates, inst)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return ir.UseCount(candidates[i]) > ir.UseCount(candidates[j])
	})

	plan := &registerPlan{reg: map[ir.Value]string{}}
	slot := 0
	for _, inst := range candidates {
		if slot >= len(calleeSaved) {
			break
		}
		if ir.UseCount(inst) < 2 {
			continue
		}
		plan.reg[ir.Value(inst)] = calleeSaved[slot]
		slot++
	}
	return plan
}
