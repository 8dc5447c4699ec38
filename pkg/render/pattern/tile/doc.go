// Package tile splits a full-scale pattern drawing into printable pages.
//
// [Paginate] covers a drawing's bounds with overlapping page windows on the
// chosen [Paper]; [RenderPages] renders each window as a 1:1 SVG with
// registration crosses at the window corners and an "R{row}C{col}" label, so
// the sheets can be trimmed and taped together. Page R1C1 carries a
// 5 cm test square to check the printer scale.
package tile
