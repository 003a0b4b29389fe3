package interp

import "github.com/cwbudde/go-cint/internal/ast"

func (e *Evaluator) execWhile(s *ast.WhileStatement) (signal, error) {
	for {
		cond, err := e.truthy(s.Condition)
		if err != nil {
			return noSignal, err
		}
		if !cond {
			return noSignal, nil
		}
		sig, err := e.execNode(s.Body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return noSignal, nil
		case sigReturn:
			return sig, nil
		}
	}
}

func (e *Evaluator) execDoWhile(s *ast.DoWhileStatement) (signal, error) {
	for {
		sig, err := e.execNode(s.Body)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return noSignal, nil
		case sigReturn:
			return sig, nil
		}
		cond, err := e.truthy(s.Condition)
		if err != nil {
			return noSignal, err
		}
		if !cond {
			return noSignal, nil
		}
	}
}

func (e *Evaluator) execFor(s *ast.ForStatement) (signal, error) {
	e.mem.PushScope()
	defer e.mem.PopScope()

	if _, err := e.execNode(s.Setup); err != nil {
		return noSignal, err
	}
	for {
		if s.Condition != nil {
			cond, err := e.truthy(s.Condition)
			if err != nil {
				return noSignal, err
			}
			if !cond {
				return noSignal, nil
			}
		}
		sig, err := e.execNode(s.Body)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == sigBreak {
			return noSignal, nil
		}
		if sig.kind == sigReturn {
			return sig, nil
		}
		// sigContinue and sigNone both fall through to the increment step.
		if s.Increment != nil {
			if _, err := e.evalExpr(s.Increment); err != nil {
				return noSignal, err
			}
		}
	}
}
