// Package slots scans a template skeleton for named slots and substitutes
// each one with rendered content in a single pass.
//
// Two forms declare a slot:
//
//	<!--SLOT:name-->                                 marker, kind set by the binding
//	<script data-inline src="lib.js"></script>       anchor, inline-script
//	<link rel="stylesheet" data-inline href="a.css"> anchor, inline-style
//
// Markers are only recognized in markup context: a "<!--SLOT:x-->" sequence
// inside <script>, <style>, <title> or <textarea> text is ordinary text.
// Inserted content is never re-scanned, so content cannot expand further slots.
package slots
