// Package astrom transforms astrometric positions and their 2x2 covariances
// between frames: polynomial mappings over a rescaled [-1,1] domain and the
// gnomonic projection between the tangent plane and equatorial coordinates.
// Every transform exposes its Jacobian so uncertainties propagate as J C J^T.
package astrom
