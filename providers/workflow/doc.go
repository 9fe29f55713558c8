// Package workflow defines the contract for upstream workflow engines that
// turn a natural-language prompt into a raw text payload. Implementations
// live in sub-packages (see dify).
package workflow
