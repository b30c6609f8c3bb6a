// Package navigation provides a single-screen router that fades between
// declared routes.
//
// Routes are declared with typed keys so that a route's component and the
// props passed to it always agree:
//
//	var (
//	    Home    = navigation.NewKey[navigation.NoProps]("home")
//	    Profile = navigation.NewKey[ProfileProps]("profile")
//	)
//
//	navigation.Navigation{
//	    Routes: []core.Widget{
//	        navigation.DeclareBare(Home, buildHome).AsDefault(),
//	        navigation.Declare(Profile, buildProfile),
//	    },
//	    OnHardwareBackPress: func(nav navigation.Navigator) {
//	        navigation.GoTo(nav, Home)
//	    },
//	}
//
// Exactly one route is shown at a time. Descendants of the active route reach
// the router with [Of] and move with [Go] or [GoTo]. Every move fades the
// current route out, swaps it, then fades the new one in. When several moves
// overlap, the last one requested wins.
package navigation
