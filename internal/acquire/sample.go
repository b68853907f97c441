package acquire

// SampleText is the built-in demonstration contract: six numbered clauses,
// one per risk category.
const SampleText = `1. Confidentiality. The Vendor shall maintain the confidentiality of all Client data.
2. Termination. Either party may terminate this Agreement upon thirty (30) days notice.
3. Limitation of Liability. In no event shall either party be liable for indirect, incidental, or consequential damages.
4. Indemnification. Client agrees to indemnify and hold harmless Vendor.
5. Governing Law and Arbitration. Any dispute shall be resolved by binding arbitration.
6. Waiver and Assignment. No waiver of any term shall be deemed a further waiver.`
