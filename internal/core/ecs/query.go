package ecs

// Each1 visits live entities holding A, in insertion order.
func Each1[A Component](s *Store, fn func(*Entity, *A)) {
	for _, e := range s.live {
		if a, ok := Get[A](e); ok {
			fn(e, a)
		}
	}
}

// Each2 visits live entities holding both A and B, in insertion order.
func Each2[A, B Component](s *Store, fn func(*Entity, *A, *B)) {
	for _, e := range s.live {
		a, ok := Get[A](e)
		if !ok {
			continue
		}
		if b, ok := Get[B](e); ok {
			fn(e, a, b)
		}
	}
}

// Each3 visits live entities holding A, B and C, in insertion order.
func Each3[A, B, C Component](s *Store, fn func(*Entity, *A, *B, *C)) {
	for _, e := range s.live {
		a, ok := Get[A](e)
		if !ok {
			continue
		}
		b, ok := Get[B](e)
		if !ok {
			continue
		}
		if c, ok := Get[C](e); ok {
			fn(e, a, b, c)
		}
	}
}
