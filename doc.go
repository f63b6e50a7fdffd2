// Package chain provides a small engine for running an ordered list of steps
// against one shared, mutable payload.
// It allows you to register plain functions or step objects, fan a step out
// over a list, and wrap every step in optional before and after hooks.
//
// # Key Features
//
//   - **Pipelines**: Register steps in order, then execute them in that order.
//   - **Fan-out/Fan-in**: One step runs an operation per list item concurrently and waits for all of them.
//   - **Hooks**: Optional before/after functions invoked around every step.
//   - **Generic**: Works with any data type.
//   - **Context-aware**: Cancellation is threaded explicitly through [Pipeline.Execute].
//
// # Core Concepts
//
//   - **Step**: A registered [Func] or [Runner] paired with its metadata.
//   - **Meta**: Opaque per-step configuration handed to the step and to the hooks around it.
//   - **Hooks**: A [Hooks] pair supplied at construction with [WithHooks].
//   - **Slots**: Fresh records allocated inside a parent collection, see [AppendSlot] and [AssignSlot].
//
// # Shared Data
//
// Execute threads a single *T through every hook and step. Steps communicate
// by mutating that value, never by replacing it: whatever a step does, the
// pointer returned by Execute is the pointer that was passed in. Fan-out items
// share it too, and the engine does not lock it; give each item its own slot
// when items write results.
package chain
