package evaluator

import (
	"context"
	"errors"
	"fmt"
)

type genState int

const (
	genCreated genState = iota
	genSuspended
	genRunning
	genDone
)

type genMsg struct {
	value Value
	err   error
	done  bool
}

// Generator is the lazy sequence returned by calling a function whose body
// contains hasilkan. The body runs on its own goroutine, which parks at
// every yield until the consumer asks for the next value. Exactly one of
// the two goroutines runs at any time.
type Generator struct {
	Name string

	fn     *Function
	env    *Env
	in     *Interpreter
	depth  int
	state  genState
	ev     *evaluator
	resume chan bool
	out    chan genMsg
}

func (*Generator) cyvalue() {}

func (ev *evaluator) newGenerator(fn *Function, env *Env) *Generator {
	return &Generator{Name: fn.Name, fn: fn, env: env, in: ev.in, depth: ev.depth}
}

// Next resumes the body until its next yield. ok is false once the body
// has finished; later calls keep returning false.
func (g *Generator) Next(ctx context.Context) (Value, bool, error) {
	switch g.state {
	case genDone:
		return nil, false, nil
	case genRunning:
		return nil, false, valueErrorf("Generator '%s' sedang berjalan", g.Name)
	case genCreated:
		g.ev = g.in.newEvaluator(ctx, g.env, g.depth)
		g.ev.globals = g.fn.Globals
		g.ev.gen = g
		g.resume = make(chan bool)
		g.out = make(chan genMsg)
		g.in.generators = append(g.in.generators, g)
		g.state = genRunning
		go g.run()
	default:
		g.ev.ctx = ctx
		g.state = genRunning
		g.resume <- true
	}
	msg := <-g.out
	if msg.done {
		g.state = genDone
		return nil, false, msg.err
	}
	g.state = genSuspended
	return msg.value, true, nil
}

// Close abandons a suspended generator, running its pending akhirnya
// blocks. Closing a finished or unstarted generator only marks it done.
// Errors raised while closing are dropped.
func (g *Generator) Close() {
	switch g.state {
	case genCreated:
		g.state = genDone
		return
	case genSuspended:
	default:
		return
	}
	// Cleanup runs even when the consumer's context is already cancelled.
	g.ev.ctx = context.WithoutCancel(g.ev.ctx)
	g.state = genRunning
	g.resume <- false
	for msg := range g.out {
		if msg.done {
			break
		}
		g.resume <- false
	}
	g.state = genDone
}

func (g *Generator) run() {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator %s: %v", g.Name, r)
		}
		g.out <- genMsg{done: true, err: err}
	}()
	_, err = g.ev.execBlock(g.fn.Body)
	if errors.Is(err, errGeneratorClosed) {
		err = nil
	}
}

// yield hands v to the consumer and parks until resumed.
func (g *Generator) yield(v Value) error {
	g.out <- genMsg{value: v}
	if !<-g.resume {
		return errGeneratorClosed
	}
	return nil
}
