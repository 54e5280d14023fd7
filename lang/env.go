//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package lang

// An Env is one lexical scope: name bindings plus an optional parent.
// Environments form a tree rooted at the global scope; closures keep a
// reference to the scope where they were created, which stays alive as
// long as the closure does.
type Env struct {
	vars   map[string]*Expr
	parent *Env
}

// NewEnv returns a scope chained to parent; parent may be nil for the
// root.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]*Expr), parent: parent}
}

// Define creates or replaces a binding in this scope only. A parent's
// binding of the same name is shadowed, never touched.
func (e *Env) Define(name string, value *Expr) {
	e.vars[name] = value
}

// Assign updates an existing binding, searching this scope then the
// parent chain. It reports false if the name is bound nowhere.
func (e *Env) Assign(name string, value *Expr) bool {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.vars[name]; ok {
			scope.vars[name] = value
			return true
		}
	}
	return false
}

// Lookup resolves a name through this scope and its parents.
func (e *Env) Lookup(name string) (*Expr, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if value, ok := scope.vars[name]; ok {
			return value, true
		}
	}
	return nil, false
}
