// Package zoto provides a Go client for turning food preferences into
// restaurant recommendations.
//
// A Client talks to a recommendation service. Each Session holds one
// preference selection and runs searches against it: validate the selection,
// acquire the user's location, then ask the service for restaurants.
//
//	client, _ := zoto.New(
//	    zoto.WithEndpoint("https://food.example.com/api/recommendations"),
//	    zoto.WithStaticLocation(12.9716, 77.5946),
//	)
//	defer client.Close()
//
//	s := client.NewSession()
//	_ = s.Toggle(zoto.FieldCuisines, "italian")
//	_ = s.Select(zoto.FieldBudget, "low")
//	s.SetCraving("wood-fired pizza")
//
//	state, err := s.Search(ctx)
//	switch {
//	case errors.Is(err, zoto.ErrNoMatches):
//	    // nothing found, try other preferences
//	case err != nil:
//	    // state.Phase == zoto.PhaseFailed
//	}
//	for _, r := range state.Restaurants {
//	    fmt.Println(r.Name, r.Rating)
//	}
//
// A session runs at most one search at a time. Search returns
// ErrSearchInFlight while another attempt on the same session is running.
package zoto
