// Package websummary assembles self-contained HTML summary reports.
//
// # Quick Start
//
// Create an assembler, bind resources to the slots of a skeleton, and write
// the result:
//
//	asm, err := websummary.NewAssembler(
//	    websummary.WithSearchPaths("dist", "vendor"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := asm.Assemble(ctx, websummary.Input{
//	    TemplateDir: "templates/summary",
//	    Data:        metrics,
//	    Bindings: []websummary.Binding{
//	        {Slot: "script", Resource: "app.js", Minified: "app.min.js"},
//	    },
//	    Summary: "<h1>Run 42</h1>",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("web_summary.html", result.HTML, 0o644)
//
// The document loads from disk with no network access: scripts, styles,
// data and images are all inlined.
//
// # Slots
//
// A skeleton declares slots in two ways:
//
//	<!--SLOT:name-->                                   marker, kind from the binding
//	<script data-inline src="name"></script>          script anchor
//	<link rel="stylesheet" data-inline href="name">   style anchor
//
// Anchors name their own resource, as do markers whose name has a known
// extension (<!--SLOT:notes.md-->); both resolve through the component
// source unless a Binding targets them first. Other markers need a Binding.
// The bundled default skeleton links websummary.css and websummary.js,
// which the search paths can override.
//
// Content is escaped for its context, so a bound script can never close its
// own <script> element early. Rendered content is not scanned again; a slot
// declaration that survives substitution is an error.
//
// # Assembly Pipeline
//
//  1. Skeleton loading (Input.Template, template.html, or the bundled default)
//  2. Resource resolution over the ordered search paths
//  3. Data embedding as window.data = {...};
//  4. Summary rendering ([[ include FILE ]], Markdown, inline images)
//  5. Slot substitution and residual check
//  6. Size budget check, with one retry using minified resources
//
// # Size Budget
//
// Documents over the ceiling (10 MiB by default) fail with an error
// matching ErrSizeBudgetExceeded. WithBudgetMode(BudgetWarn) turns the
// failure into a warning, and WithSizeCeiling(0) disables the check.
//
// # Verification
//
// Verifier loads a finished document in headless Chrome (go-rod) with every
// non-local request blocked, and reports blocked requests, script errors
// and whether the data variable was defined.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package websummary
