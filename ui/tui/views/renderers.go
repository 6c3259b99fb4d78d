package views

func RenderOnboarding(props ViewProps) string {
	v := OnboardingView{}
	return v.Render(props)
}

func RenderGreetingCard(props CardProps) string {
	v := GreetingCardView{}
	return v.Render(props)
}
