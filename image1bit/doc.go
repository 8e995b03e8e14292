// Package image1bit provides the 1-bit monochrome image format used by the
// NAGP1250 VFD together with a small software rasterizer.
//
// The display stores pixels column-major: each byte covers 8 vertically
// stacked dots within one column, bit 7 being the topmost dot of the group,
// columns running left to right. Pack and Unpack translate between that wire
// layout and the row-major Bitmap type.
//
// The rasterizer exists because the display firmware draws nothing by
// itself: lines, circles and rounded boxes are plotted in software into a
// Bitmap, optionally merged with Combine, then packed and uploaded.
package image1bit
